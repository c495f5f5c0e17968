package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DiskState describes how a disk file relates to the DiskDetails recorded
// for it.
type DiskState int

const (
	Unchanged DiskState = iota
	Modified
	Removed
)

func (s DiskState) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("DiskState(%d)", int(s))
}

// DiskDetails records what a window last read from or wrote to its disk
// backing.
type DiskDetails struct {
	Name string
	Info os.FileInfo
	Hash Hash // Used to check if the file has changed on disk since loaded.
}

// DetailsFor stats and hashes filename.
func DetailsFor(filename string) (*DiskDetails, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	h, err := HashFor(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for %v: %v", filename, err)
	}
	return &DiskDetails{Name: filename, Info: info, Hash: h}, nil
}

// Check compares the disk file with the recorded details. A file whose
// modification time and size are unchanged is not rehashed. A touched
// file with identical content is Unchanged and its Info is refreshed.
func (f *DiskDetails) Check() (DiskState, error) {
	d, err := os.Stat(f.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return Removed, nil
	}
	if err != nil {
		return Unchanged, err
	}
	if f.Info != nil && d.ModTime().Equal(f.Info.ModTime()) && d.Size() == f.Info.Size() {
		return Unchanged, nil
	}
	h, err := HashFor(f.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return Removed, nil
	}
	if err != nil {
		return Unchanged, fmt.Errorf("failed to compute hash for %v: %v", f.Name, err)
	}
	if h.Eq(f.Hash) {
		f.Info = d
		return Unchanged, nil
	}
	return Modified, nil
}
