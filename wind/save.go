package wind

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rjkroege/textpad/file"
)

// maybeSave runs the save prompt for a modified document. It returns
// false if the surrounding operation must not proceed.
func (w *Window) maybeSave() bool {
	if !w.hist.IsModified() {
		return true
	}
	switch w.prompter.AskSave(w.title) {
	case Save:
		ok, _ := w.SaveDocument()
		return ok
	case Discard:
		return true
	}
	return false
}

// Close offers to save a modified document. It returns false if the
// window must stay open.
func (w *Window) Close() bool {
	return w.maybeSave()
}

// SaveDocument saves to the window's file, asking for a name if it has
// none.
func (w *Window) SaveDocument() (bool, error) {
	if w.path == "" {
		return w.SaveDocumentAs()
	}
	return w.SaveTo(w.path, false)
}

// SaveDocumentAs saves under a name chosen by the user, which becomes the
// window's file.
func (w *Window) SaveDocumentAs() (bool, error) {
	name, ok := w.prompter.SaveFilename(w.title)
	if !ok {
		return false, nil
	}
	return w.SaveTo(name, false)
}

// SaveDocumentCopy writes the document under a name chosen by the user
// without changing the window's file or history.
func (w *Window) SaveDocumentCopy() (bool, error) {
	name, ok := w.prompter.SaveFilename(w.title)
	if !ok {
		return false, nil
	}
	return w.SaveTo(name, true)
}

// SaveTo writes the document to path in its encoding and line-ending
// mode, replacing any existing file only once the new contents are
// completely written. Unless saveCopy is set, path becomes the window's file
// and the history is marked clean. Errors are reported to the Prompter
// and leave the window and the previous file untouched.
func (w *Window) SaveTo(path string, saveCopy bool) (bool, error) {
	details, err := w.write(path)
	if err != nil {
		w.prompter.ReportError(err)
		return false, err
	}
	if saveCopy {
		if details.Name == w.path {
			w.disk = details
		}
		return true, nil
	}

	w.buf.Commit()
	w.buf.Clean()
	renamed := details.Name != w.path
	w.path = details.Name
	w.disk = details
	w.outOfDate = false
	w.hist.MarkClean()
	w.updateTitle()
	if renamed {
		w.publish(FileChanged)
	}
	return true, nil
}

func (w *Window) write(path string) (*file.DiskDetails, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if !w.encodingValid {
		w.log.Printf("saving %s as %s: %q is not a known encoding", abs, w.codec.Name, w.encoding)
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(abs); err == nil {
		if fi.IsDir() {
			return nil, fmt.Errorf("%s is a directory", abs)
		}
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".textpad-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	h := file.NewHasher()
	bw := bufio.NewWriter(io.MultiWriter(tmp, h))
	if w.bom && w.codec.Unicode {
		if _, err := bw.Write(w.codec.BOM); err != nil {
			return nil, err
		}
	}
	enc := w.codec.NewEncodeWriter(bw, w.lineEnding)
	if _, err := io.Copy(enc, io.NewSectionReader(w.buf, 0, w.buf.Size())); err != nil {
		return nil, fmt.Errorf("encoding %s as %s: %w", abs, w.codec.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s as %s: %w", abs, w.codec.Name, err)
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	if err := tmp.Chmod(mode); err != nil {
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	name := tmp.Name()
	tmp = nil
	if err := os.Rename(name, abs); err != nil {
		os.Remove(name)
		return nil, err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	return &file.DiskDetails{Name: abs, Info: fi, Hash: file.HashOf(h)}, nil
}

// CheckForModifications compares the window's file with the state seen
// at the last load or save. A change marks the window out of date and
// offers to reload; the result is that of the reload. A removed file is
// marked out of date without asking.
func (w *Window) CheckForModifications() (bool, error) {
	if w.disk == nil {
		return false, nil
	}
	state, err := w.disk.Check()
	if err != nil {
		w.log.Printf("checking %s: %v", w.path, err)
		return false, err
	}
	switch state {
	case file.Unchanged:
		return false, nil
	case file.Removed:
		if !w.outOfDate {
			w.outOfDate = true
			w.publish(OutOfDate)
		}
		return false, nil
	}

	// Remember what is on disk now so that this change is only offered
	// once.
	if d, err := file.DetailsFor(w.path); err == nil {
		w.disk = d
	}
	w.outOfDate = true
	w.publish(OutOfDate)
	if !w.prompter.ConfirmReload(w.title) {
		return false, nil
	}
	ok, err := w.Reload()
	if errors.Is(err, ErrNoFilename) {
		return false, nil
	}
	return ok, err
}
