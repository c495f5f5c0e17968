package wind

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/detect"
	"github.com/rjkroege/textpad/file"
	"github.com/rjkroege/textpad/util"
)

// document is a file read from disk but not yet installed in a window.
type document struct {
	path     string
	encoding string
	bom      bool
	le       codec.LineEnding
	text     []byte
	syntax   detect.Syntax
	disk     *file.DiskDetails
}

// NewDocument replaces the document with an empty one after offering to
// save modifications. It returns false if the user cancelled.
func (w *Window) NewDocument() bool {
	if !w.maybeSave() {
		return false
	}
	w.resetDocument()
	return true
}

func (w *Window) resetDocument() {
	le, err := w.settings.LineEnding()
	if err != nil {
		le = codec.PlatformLineEnding()
	}
	w.SetEncoding(w.settings.DefaultEncoding)
	w.SetLineEndingMode(le)
	w.SetUTFBOM(false)
	w.SetSyntax("")
	w.buf.Reset(nil)
	w.hist.Clear()
	w.path = ""
	w.disk = nil
	w.outOfDate = false
	w.updateTitle()
	w.publish(FileChanged)
}

// Open loads path after offering to save modifications.
func (w *Window) Open(path, encoding string) (bool, error) {
	if !w.maybeSave() {
		return false, nil
	}
	return w.LoadFrom(path, encoding)
}

// Reload rereads the window's file, discarding modifications once the
// user agrees.
func (w *Window) Reload() (bool, error) {
	return w.ReloadWithEncoding("")
}

// ReloadWithEncoding rereads the window's file decoding it as encoding.
func (w *Window) ReloadWithEncoding(encoding string) (bool, error) {
	if w.path == "" {
		return false, ErrNoFilename
	}
	if w.hist.IsModified() && !w.prompter.ConfirmDiscard(w.title) {
		return false, nil
	}
	return w.LoadFrom(w.path, encoding)
}

// LoadFrom replaces the document with the contents of path. An empty
// encoding means the detected one. LoadFrom returns false with a nil
// error if the user declined to load a large file. I/O errors are
// reported to the Prompter and returned. The window is unchanged unless
// the load succeeds.
func (w *Window) LoadFrom(path, encoding string) (bool, error) {
	doc, err := w.read(path, encoding)
	if err != nil {
		w.prompter.ReportError(err)
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	w.install(doc)
	return true, nil
}

func (w *Window) read(path, explicit string) (*document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}
	if fi.Size() > w.settings.LargeFileThreshold && !w.prompter.ConfirmLargeFile(abs, fi.Size()) {
		return nil, nil
	}

	h := file.NewHasher()
	src := io.TeeReader(f, h)
	prefix := make([]byte, w.settings.DetectionSize)
	n, err := io.ReadFull(src, prefix)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}
	prefix = prefix[:n]
	guess := w.detector.Detect(prefix, abs)

	doc := &document{path: abs, le: guess.LineEnding}
	c := w.chooseCodec(doc, explicit, guess.Encoding)
	doc.bom = guess.BOMOffset > 0 && c.Unicode

	skip := util.Min(guess.BOMOffset, len(prefix))
	dec := c.NewDecodeReader(io.MultiReader(bytes.NewReader(prefix[skip:]), src))
	var text bytes.Buffer
	text.Grow(int(fi.Size()))
	chunk := make([]byte, w.settings.DecodeBlockSize)
	for {
		n, err := dec.Read(chunk)
		text.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s as %s: %w", abs, c.Name, err)
		}
	}
	doc.text = text.Bytes()
	doc.disk = &file.DiskDetails{Name: abs, Info: fi, Hash: file.HashOf(h)}

	sniff := doc.text
	if len(sniff) > w.settings.DetectionSize {
		sniff = util.ValidPrefix(sniff[:w.settings.DetectionSize])
	}
	// A content match wins over the filename.
	if doc.syntax = w.resolver.DefinitionForContent(sniff); doc.syntax == "" {
		doc.syntax = w.resolver.DefinitionForFilename(abs)
	}
	return doc, nil
}

// chooseCodec records the encoding name for doc and returns the codec to
// decode with: a valid explicit encoding, else the detected one, else the
// window's last valid codec.
func (w *Window) chooseCodec(doc *document, explicit, detected string) *codec.Codec {
	if explicit != "" {
		c, err := w.codecs.Resolve(explicit)
		if err == nil {
			doc.encoding = c.Name
			return c
		}
		w.log.Printf("invalid manually-specified encoding %q: %v", explicit, err)
	}
	doc.encoding = detected
	c, err := w.codecs.Resolve(detected)
	if err != nil {
		w.log.Printf("detected invalid codec %q: %v", detected, err)
		return w.codec
	}
	doc.encoding = c.Name
	return c
}

func (w *Window) install(doc *document) {
	w.SetEncoding(doc.encoding)
	w.SetLineEndingMode(doc.le)
	w.SetUTFBOM(doc.bom)
	// Clear the syntax first so that the new text is highlighted once.
	w.SetSyntax("")
	w.buf.Reset(doc.text)
	w.hist.Clear()
	w.hist.MarkClean()
	w.SetSyntax(doc.syntax)

	w.path = doc.path
	w.disk = doc.disk
	w.outOfDate = false
	w.updateTitle()
	w.publish(FileChanged)
}
