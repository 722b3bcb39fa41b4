package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/snapc/internal/ir"
)

// createTestStore opens a fresh cache in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBuild begins a build under configHash.
func createTestBuild(t *testing.T, s *Store, configHash string) string {
	t.Helper()
	id, err := s.BeginBuild(context.Background(), configHash)
	if err != nil {
		t.Fatalf("BeginBuild() failed: %v", err)
	}
	return id
}

// createTestManifest returns a sealed manifest with one attribute part.
func createTestManifest(t *testing.T, uid string) ir.Manifest {
	t.Helper()
	m := ir.Manifest{
		UID:      uid,
		Filename: "App.jsx",
		Line:     1,
		Target:   "LEPUS",
		Elements: 1,
		Parts:    []ir.PartRecord{{Kind: "attr", Element: 0, Value: 0}},
		Slots:    []ir.SlotRecord{},
		Code:     "function(snapshotInstance) { return [el]; }",
	}
	if err := m.Seal(); err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}
	return m
}
