// Package log writes the terrain edit audit trail as rotated, compressed
// JSONL files.
package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// EditEntry is one applied terrain mutation.
type EditEntry struct {
	At       string   `json:"at"`
	Client   string   `json:"client,omitempty"`
	Op       string   `json:"op"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Affected []string `json:"affected,omitempty"`
}

type jsonlZstdWriter struct {
	baseDir string
	prefix  string

	mu     sync.Mutex
	curDay string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

func (w *jsonlZstdWriter) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := time.Now().UTC().Format("2006-01-02")
	if day != w.curDay {
		if err := w.rotateLocked(day); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlZstdWriter) rotateLocked(day string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, day))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curDay = day
	return nil
}

func (w *jsonlZstdWriter) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err
}

// EditLogger appends one compressed JSONL entry per applied edit.
type EditLogger struct{ w *jsonlZstdWriter }

func NewEditLogger(worldDir string) *EditLogger {
	return &EditLogger{w: &jsonlZstdWriter{
		baseDir: filepath.Join(worldDir, "edits"),
		prefix:  "edits",
	}}
}

func (l *EditLogger) WriteEdit(e EditEntry) error {
	if e.At == "" {
		e.At = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return l.w.write(e)
}

func (l *EditLogger) Close() error {
	l.w.mu.Lock()
	defer l.w.mu.Unlock()
	return l.w.closeLocked()
}
