package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestEditLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	l := NewEditLogger(dir)

	entries := []EditEntry{
		{Client: "C1", Op: "raise", X: 3, Y: 4, Affected: []string{"3,4"}},
		{Client: "C2", Op: "toggle_water", X: 9, Y: 9, Affected: []string{"9,9", "8,9"}},
	}
	for _, e := range entries {
		if err := l.WriteEdit(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "edits", "edits-*.jsonl.zst"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("log files %v (%v)", matches, err)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	var got []EditEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e EditEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		got = append(got, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries", len(got))
	}
	if got[0].Op != "raise" || got[0].X != 3 || got[0].At == "" {
		t.Fatalf("entry %+v", got[0])
	}
	if got[1].Client != "C2" || len(got[1].Affected) != 2 {
		t.Fatalf("entry %+v", got[1])
	}
}
