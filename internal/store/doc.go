// Package store is the SQLite-backed build cache for snapc.
//
// The cache holds three tables:
//   - builds: one row per compile or watch session, ordered by a logical seq
//   - files: the last output of each source path, keyed by file and config hash
//   - snapshots: the sealed manifests of the snapshots each file defines
//
// A file record is a hit only when both its source hash (ir.FileHash) and the
// config hash match, so changing any output-affecting setting invalidates the
// whole cache without an explicit purge.
//
// Manifests are stored as JSON next to their manifest hash and verified on
// every read; a mismatch surfaces as ErrCorruptManifest rather than stale
// data.
//
// # Database Configuration
//
//   - WAL mode: inspect can read while watch writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: deleting a file cascades to its snapshots
package store
