// Package mirror copies written terrain saves to an S3-compatible bucket
// in the background, so a host crash cannot lose more than the unsaved
// in-memory state.
package mirror

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Uploader is the object store the mirror writes through. Satisfied by
// *S3Client.
type Uploader interface {
	PutFile(ctx context.Context, objectKey, localPath string) error
}

// Mirror uploads save files asynchronously. Enqueue never blocks the
// saving caller beyond a short bounded wait; a saturated queue drops the
// upload and logs it.
type Mirror struct {
	up      Uploader
	dataDir string
	prefix  string
	log     *log.Logger

	jobs chan string
	wg   sync.WaitGroup
}

func New(up Uploader, dataDir, prefix string, workers int, logger *log.Logger) *Mirror {
	if workers <= 0 {
		workers = 1
	}
	m := &Mirror{
		up:      up,
		dataDir: dataDir,
		prefix:  strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/"),
		log:     logger,
		jobs:    make(chan string, 256),
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for localPath := range m.jobs {
				m.uploadOne(localPath)
			}
		}()
	}
	return m
}

// Enqueue schedules one local save file for upload. Nil receivers are
// no-ops so call sites need no mirror-enabled branch.
func (m *Mirror) Enqueue(localPath string) {
	if m == nil {
		return
	}
	select {
	case m.jobs <- localPath:
	case <-time.After(25 * time.Millisecond):
		m.printf("mirror drop local=%s reason=queue_saturated", localPath)
	}
}

// Close drains the queue and stops the workers.
func (m *Mirror) Close() {
	if m == nil {
		return
	}
	close(m.jobs)
	m.wg.Wait()
}

func (m *Mirror) uploadOne(localPath string) {
	key, err := m.objectKey(localPath)
	if err != nil {
		m.printf("mirror skip local=%s err=%v", localPath, err)
		return
	}

	const maxAttempts = 4
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		lastErr = m.up.PutFile(ctx, key, localPath)
		cancel()
		if lastErr == nil {
			m.printf("mirror uploaded key=%s", key)
			return
		}
		time.Sleep(time.Duration(attempt*attempt) * 200 * time.Millisecond)
	}
	m.printf("mirror upload failed key=%s err=%v", key, lastErr)
}

// objectKey maps a local save path to its bucket key, relative to the
// data directory. Files outside the data directory are refused.
func (m *Mirror) objectKey(localPath string) (string, error) {
	if localPath == "" {
		return "", fmt.Errorf("empty local path")
	}
	if _, err := os.Stat(localPath); err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(m.dataDir)
	if err != nil {
		return "", err
	}
	absLocal, err := filepath.Abs(localPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absLocal)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %s is outside data dir %s", absLocal, absBase)
	}
	if m.prefix != "" {
		return path.Join(m.prefix, rel), nil
	}
	return rel, nil
}

func (m *Mirror) printf(format string, args ...any) {
	if m.log != nil {
		m.log.Printf(format, args...)
	}
}
