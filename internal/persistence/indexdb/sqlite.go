// Package indexdb keeps a small SQLite read-model over written terrain
// blobs: one row per save with its digest and cell counts, so hosts can
// find the latest save without scanning the data directory.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SaveIndex struct {
	db *sql.DB
}

type SaveRow struct {
	WorldID      string
	Seed         int64
	BiomeID      string
	Path         string
	Digest       string
	Width        int
	Height       int
	WaterCells   int
	FeatureCells int
}

func Open(path string) (*SaveIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS saves (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  world_id      TEXT NOT NULL,
  seed          INTEGER NOT NULL,
  biome_id      TEXT NOT NULL,
  path          TEXT NOT NULL,
  digest        TEXT NOT NULL,
  width         INTEGER NOT NULL,
  height        INTEGER NOT NULL,
  water_cells   INTEGER NOT NULL,
  feature_cells INTEGER NOT NULL,
  created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_world ON saves(world_id, id);
`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SaveIndex{db: db}, nil
}

func (x *SaveIndex) Close() error { return x.db.Close() }

func (x *SaveIndex) RecordSave(row SaveRow) error {
	_, err := x.db.Exec(`
INSERT INTO saves (world_id, seed, biome_id, path, digest, width, height, water_cells, feature_cells, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.WorldID, row.Seed, row.BiomeID, row.Path, row.Digest,
		row.Width, row.Height, row.WaterCells, row.FeatureCells,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// LatestPath returns the most recently recorded blob path for a world, or
// "" when the world has no saves yet.
func (x *SaveIndex) LatestPath(worldID string) (string, error) {
	var path string
	err := x.db.QueryRow(
		`SELECT path FROM saves WHERE world_id = ? ORDER BY id DESC LIMIT 1`,
		worldID).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest save: %w", err)
	}
	return path, nil
}

// Saves lists all recorded saves for a world, newest first.
func (x *SaveIndex) Saves(worldID string) ([]SaveRow, error) {
	rows, err := x.db.Query(`
SELECT world_id, seed, biome_id, path, digest, width, height, water_cells, feature_cells
FROM saves WHERE world_id = ? ORDER BY id DESC`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveRow
	for rows.Next() {
		var r SaveRow
		if err := rows.Scan(&r.WorldID, &r.Seed, &r.BiomeID, &r.Path, &r.Digest,
			&r.Width, &r.Height, &r.WaterCells, &r.FeatureCells); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
