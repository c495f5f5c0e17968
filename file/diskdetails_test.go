package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHashFor(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "hashme")
	contents := []byte("Hello, world\n")
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h, err := HashFor(filename)
	if err != nil {
		t.Fatalf("HashFor failed: %v", err)
	}
	if !h.Eq(CalcHash(contents)) {
		t.Errorf("HashFor and CalcHash disagree")
	}
	if h.Eq(EmptyHash) {
		t.Errorf("hash of non-empty file is empty")
	}

	hh := NewHasher()
	hh.Write(contents[:5])
	hh.Write(contents[5:])
	if !HashOf(hh).Eq(h) {
		t.Errorf("streamed hash differs from HashFor")
	}

	if _, err := HashFor(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("HashFor of a missing file succeeded")
	}
}

func TestDiskDetailsCheck(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(filename, []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	d, err := DetailsFor(filename)
	if err != nil {
		t.Fatalf("DetailsFor failed: %v", err)
	}

	check := func(want DiskState) {
		t.Helper()
		got, err := d.Check()
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if got != want {
			t.Errorf("Check got %v want %v", got, want)
		}
	}

	check(Unchanged)

	// Touching without changing content is not a modification.
	later := time.Now().Add(time.Hour).Truncate(time.Second)
	if err := os.Chtimes(filename, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	check(Unchanged)
	if !d.Info.ModTime().Equal(later) {
		t.Errorf("Check did not refresh Info after a touch")
	}

	if err := os.WriteFile(filename, []byte("second version"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	check(Modified)

	if err := os.Remove(filename); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	check(Removed)
}

func TestDiskStateString(t *testing.T) {
	for s, want := range map[DiskState]string{
		Unchanged:    "unchanged",
		Modified:     "modified",
		Removed:      "removed",
		DiskState(9): "DiskState(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("String got %q want %q", got, want)
		}
	}
}
