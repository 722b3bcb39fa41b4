package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
)

// FileRecord is the cached result of compiling one source file.
type FileRecord struct {
	Path string
	// FileHash is ir.FileHash of the source the output was compiled from.
	FileHash   string
	ConfigHash string
	BuildID    string
	Output     string
	// Diagnostics are the warnings reported while compiling. Files that
	// produced errors are never cached.
	Diagnostics []diag.Diagnostic
}

// BeginBuild records a new build under configHash and returns its id.
// Build ids are UUIDv7 so they sort by creation; the seq column is the
// authoritative order.
func (s *Store) BeginBuild(ctx context.Context, configHash string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("begin build: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO builds (id, seq, config_hash, compiler_version)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM builds), ?, ?)
	`, id.String(), configHash, ir.CompilerVersion)
	if err != nil {
		return "", fmt.Errorf("begin build: %w", err)
	}
	return id.String(), nil
}

// PutFile stores rec, replacing any earlier record for the same path.
// Snapshots recorded for the path are dropped with the old record; call
// PutSnapshots afterwards.
func (s *Store) PutFile(ctx context.Context, rec FileRecord) error {
	diagsJSON, err := marshalDiagnostics(rec.Diagnostics)
	if err != nil {
		return fmt.Errorf("put file %s: %w", rec.Path, err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, rec.Path); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO files (path, file_hash, config_hash, build_id, output, diagnostics)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.Path, rec.FileHash, rec.ConfigHash, rec.BuildID, rec.Output, diagsJSON)
		return err
	})
	if err != nil {
		return fmt.Errorf("put file %s: %w", rec.Path, err)
	}
	return nil
}

// PutSnapshots replaces the manifests recorded for path. The file record
// must exist. Manifests must be sealed; they are stored in the given order.
func (s *Store) PutSnapshots(ctx context.Context, path string, manifests []ir.Manifest) error {
	rows := make([]string, len(manifests))
	for i, m := range manifests {
		data, err := marshalManifest(m)
		if err != nil {
			return fmt.Errorf("put snapshots %s: %w", path, err)
		}
		rows[i] = data
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE path = ?`, path); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO snapshots (path, ordinal, uid, manifest_hash, manifest)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, m := range manifests {
			if _, err := stmt.ExecContext(ctx, path, i, m.UID, m.Hash, rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("put snapshots %s: %w", path, err)
	}
	return nil
}

// DeleteFile forgets path and its snapshots. Deleting an unknown path is
// not an error.
func (s *Store) DeleteFile(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}
