package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity. The version suffix allows
// the algorithm to change without old hashes colliding with new ones.
const (
	DomainContent  = "snapc/content/v1"
	DomainManifest = "snapc/manifest/v1"
	DomainConfig   = "snapc/config/v1"
)

// ContentHashLen is the number of hex digits ContentHash keeps.
const ContentHashLen = 8

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex. The null
// byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash is the content component of snapshot uids when the caller
// does not supply one. Sources that differ only in Unicode normalization
// hash the same.
func ContentHash(src []byte) string {
	return hashWithDomain(DomainContent, norm.NFC.Bytes(src))[:ContentHashLen]
}

// FileHash is the full-length content hash used as a build cache key.
func FileHash(src []byte) string {
	return hashWithDomain(DomainContent, norm.NFC.Bytes(src))
}

// ManifestHash hashes the canonical form of m. Source positions are not
// part of the hash, so moving a snapshot without changing it keeps its
// hash.
func ManifestHash(m Manifest) (string, error) {
	canonical, err := MarshalCanonical(m.Value())
	if err != nil {
		return "", fmt.Errorf("ManifestHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainManifest, canonical), nil
}

// ConfigHash hashes the options that affect compiler output. Builds with
// equal config hashes may share cached results.
func ConfigHash(opts Object) (string, error) {
	canonical, err := MarshalCanonical(opts)
	if err != nil {
		return "", fmt.Errorf("ConfigHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainConfig, canonical), nil
}

// MustManifestHash is like ManifestHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustManifestHash(m Manifest) string {
	h, err := ManifestHash(m)
	if err != nil {
		panic(err)
	}
	return h
}
