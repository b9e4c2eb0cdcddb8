// Package archive moves superseded terrain saves out of the world
// directory so the working set stays small while old saves remain
// recoverable.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type Meta struct {
	WorldID    string `json:"world_id"`
	Save       string `json:"save"`
	Digest     string `json:"digest,omitempty"`
	ArchivedAt string `json:"archived_at"`
}

// Retain keeps the newest keep saves matching worldDir/terrain-*.json.zst
// and moves the rest into worldDir/archives/, writing a meta file next to
// each. Newest is by modification time. Returns the archived paths.
func Retain(worldDir, worldID string, keep int) ([]string, error) {
	if keep < 1 {
		keep = 1
	}
	matches, err := filepath.Glob(filepath.Join(worldDir, "terrain-*.json.zst"))
	if err != nil {
		return nil, err
	}
	if len(matches) <= keep {
		return nil, nil
	}

	type save struct {
		path string
		mod  time.Time
	}
	saves := make([]save, 0, len(matches))
	for _, p := range matches {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		saves = append(saves, save{path: p, mod: fi.ModTime()})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].mod.After(saves[j].mod) })

	archiveDir := filepath.Join(worldDir, "archives")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, err
	}

	var archived []string
	for _, s := range saves[keep:] {
		dst := filepath.Join(archiveDir, filepath.Base(s.path))
		if err := moveFile(s.path, dst); err != nil {
			return archived, fmt.Errorf("archive %s: %w", s.path, err)
		}
		meta := Meta{
			WorldID:    worldID,
			Save:       filepath.Base(dst),
			ArchivedAt: time.Now().UTC().Format(time.RFC3339Nano),
		}
		if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
			_ = os.WriteFile(dst+".meta.json", b, 0o644)
		}
		archived = append(archived, dst)
	}
	return archived, nil
}

// moveFile renames when possible, falls back to copy+remove across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
