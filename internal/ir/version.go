package ir

// Version constants recorded with every build.
const (
	// ManifestVersion is the manifest schema version. It is part of every
	// manifest hash.
	ManifestVersion = "1"

	// CompilerVersion is the snapc compiler version. Cached results from a
	// different version are never reused.
	CompilerVersion = "0.1.0"
)
