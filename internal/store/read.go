package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/snapc/internal/ir"
)

// Build is one recorded build.
type Build struct {
	ID              string
	Seq             int64
	ConfigHash      string
	CompilerVersion string
}

// LookupFile returns the cached record for path when it was compiled from
// the same source under the same configuration. ok is false on a miss.
func (s *Store) LookupFile(ctx context.Context, path, fileHash, configHash string) (rec FileRecord, ok bool, err error) {
	var diagsJSON string
	err = s.db.QueryRowContext(ctx, `
		SELECT path, file_hash, config_hash, build_id, output, diagnostics
		FROM files
		WHERE path = ? AND file_hash = ? AND config_hash = ?
	`, path, fileHash, configHash).Scan(
		&rec.Path, &rec.FileHash, &rec.ConfigHash, &rec.BuildID, &rec.Output, &diagsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return FileRecord{}, false, nil
	}
	if err != nil {
		return FileRecord{}, false, fmt.Errorf("lookup file %s: %w", path, err)
	}

	rec.Diagnostics, err = unmarshalDiagnostics(diagsJSON)
	if err != nil {
		return FileRecord{}, false, fmt.Errorf("lookup file %s: %w", path, err)
	}
	return rec, true, nil
}

// Snapshots returns the manifests recorded for path in definition order.
// Returns an empty slice (not nil) if none are recorded.
func (s *Store) Snapshots(ctx context.Context, path string) ([]ir.Manifest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT manifest, manifest_hash
		FROM snapshots
		WHERE path = ?
		ORDER BY ordinal ASC
	`, path)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	out := []ir.Manifest{}
	for rows.Next() {
		var data, hash string
		if err := rows.Scan(&data, &hash); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		m, err := unmarshalManifest(data, hash)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

// SnapshotByUID finds the manifest with the given uid. ok is false when no
// cached file defines it.
func (s *Store) SnapshotByUID(ctx context.Context, uid string) (m ir.Manifest, ok bool, err error) {
	var data, hash string
	err = s.db.QueryRowContext(ctx, `
		SELECT manifest, manifest_hash FROM snapshots WHERE uid = ?
		ORDER BY path COLLATE BINARY ASC, ordinal ASC
		LIMIT 1
	`, uid).Scan(&data, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Manifest{}, false, nil
	}
	if err != nil {
		return ir.Manifest{}, false, fmt.Errorf("lookup snapshot %s: %w", uid, err)
	}
	m, err = unmarshalManifest(data, hash)
	if err != nil {
		return ir.Manifest{}, false, err
	}
	return m, true, nil
}

// Paths lists every cached file path in byte order.
func (s *Store) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM files ORDER BY path COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paths: %w", err)
	}
	return paths, nil
}

// Builds returns every recorded build ordered by seq.
func (s *Store) Builds(ctx context.Context) ([]Build, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, config_hash, compiler_version FROM builds ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		var b Build
		if err := rows.Scan(&b.ID, &b.Seq, &b.ConfigHash, &b.CompilerVersion); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}
