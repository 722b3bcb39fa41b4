package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
)

// ErrCorruptManifest is returned when a stored manifest no longer matches
// the hash recorded next to it.
var ErrCorruptManifest = fmt.Errorf("stored manifest does not match its hash")

// marshalManifest encodes m for the manifest column. The manifest must be
// sealed; its hash is stored separately and checked on read.
func marshalManifest(m ir.Manifest) (string, error) {
	if m.Hash == "" {
		return "", fmt.Errorf("marshal manifest %s: not sealed", m.UID)
	}
	s, err := encodeJSON(m)
	if err != nil {
		return "", fmt.Errorf("marshal manifest %s: %w", m.UID, err)
	}
	return s, nil
}

// unmarshalManifest decodes a manifest column and verifies it against hash.
func unmarshalManifest(data, hash string) (ir.Manifest, error) {
	var m ir.Manifest
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return ir.Manifest{}, fmt.Errorf("unmarshal manifest: %w", err)
	}
	got, err := ir.ManifestHash(m)
	if err != nil {
		return ir.Manifest{}, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if got != hash || m.Hash != hash {
		return ir.Manifest{}, fmt.Errorf("%w: %s", ErrCorruptManifest, m.UID)
	}
	return m, nil
}

func marshalDiagnostics(ds []diag.Diagnostic) (string, error) {
	if len(ds) == 0 {
		return "[]", nil
	}
	s, err := encodeJSON(ds)
	if err != nil {
		return "", fmt.Errorf("marshal diagnostics: %w", err)
	}
	return s, nil
}

func unmarshalDiagnostics(data string) ([]diag.Diagnostic, error) {
	if data == "" || data == "[]" {
		return []diag.Diagnostic{}, nil
	}
	var ds []diag.Diagnostic
	if err := json.Unmarshal([]byte(data), &ds); err != nil {
		return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	return ds, nil
}

// encodeJSON marshals v with HTML escaping disabled, so snapshot code
// containing < and > is stored as written.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
