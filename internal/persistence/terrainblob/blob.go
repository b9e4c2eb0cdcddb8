// Package terrainblob persists terrain snapshots as zstd-compressed JSON
// documents: the sparse "x,y"-keyed maps plus a versioned header.
package terrainblob

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"terrasim.ai/internal/sim/terrain"
)

const Version = 1

type HeaderV1 struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Seed    int64  `json:"seed"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type BlobV1 struct {
	Header HeaderV1 `json:"header"`

	Elevation map[string]int `json:"elevation"`
	Water     map[string]int `json:"water"`
	Features  map[string]int `json:"features"`
	BiomeID   string         `json:"biome_id"`
}

// FromState captures a full snapshot of st.
func FromState(st *terrain.State, worldID string, seed int64) BlobV1 {
	b := st.Export()
	return BlobV1{
		Header: HeaderV1{
			Version: Version,
			WorldID: worldID,
			Seed:    seed,
			Width:   st.Width(),
			Height:  st.Height(),
		},
		Elevation: b.Elevation,
		Water:     b.Water,
		Features:  b.Features,
		BiomeID:   b.BiomeID,
	}
}

// IntoState restores the blob into a fresh State sized from the header.
func (b BlobV1) IntoState() (*terrain.State, error) {
	if b.Header.Version != Version {
		return nil, fmt.Errorf("unsupported terrain blob version %d", b.Header.Version)
	}
	if b.Header.Width <= 0 || b.Header.Height <= 0 {
		return nil, fmt.Errorf("bad grid size %dx%d", b.Header.Width, b.Header.Height)
	}
	st := terrain.New(b.Header.Width, b.Header.Height)
	st.Import(terrain.Blob{
		Elevation: b.Elevation,
		Water:     b.Water,
		Features:  b.Features,
		BiomeID:   b.BiomeID,
	})
	return st, nil
}

// Digest returns a stable hex digest of the blob contents (JSON map keys
// marshal in sorted order).
func (b BlobV1) Digest() string {
	raw, _ := json.Marshal(b)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func Write(path string, b BlobV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	if err := json.NewEncoder(bw).Encode(&b); err != nil {
		return fmt.Errorf("encode terrain blob: %w", err)
	}
	return nil
}

func Read(path string) (BlobV1, error) {
	var b BlobV1
	f, err := os.Open(path)
	if err != nil {
		return b, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return b, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	if err := json.NewDecoder(br).Decode(&b); err != nil {
		return b, fmt.Errorf("decode terrain blob: %w", err)
	}
	return b, nil
}
