// Package ir provides the canonical, hashable records that describe a
// compilation: snapshot manifests, content hashes and config hashes.
//
// All other internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere; numbers are int64
//   - Hashes are computed over RFC 8785 canonical JSON with NFC strings
//   - Every hash is domain separated and versioned
//   - All JSON tags use snake_case
package ir
