// Package wind provides the Window type: the state of one open document
// (its file, encoding, line endings, byte-order mark and syntax) kept
// consistent with its text buffer and undo history.
package wind

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/config"
	"github.com/rjkroege/textpad/detect"
	"github.com/rjkroege/textpad/file"
	"github.com/rjkroege/textpad/history"
)

// ErrNoFilename is returned by operations that need a file path when the
// window has none.
var ErrNoFilename = errors.New("window has no file name")

// AppName ends every window title.
const AppName = "textpad"

// Untitled names a document that has never been saved.
const Untitled = "Untitled"

// Detector guesses encoding and line endings from a file prefix. It must
// not read anything beyond prefix.
type Detector interface {
	Detect(prefix []byte, filename string) detect.Result
}

// SyntaxResolver classifies documents. An empty result means no match.
type SyntaxResolver interface {
	DefinitionForContent(text []byte) detect.Syntax
	DefinitionForFilename(name string) detect.Syntax
}

// Options are the collaborators of a Window. Zero fields get defaults.
type Options struct {
	Settings *config.Settings
	Codecs   *codec.Registry
	Detector Detector
	Syntax   SyntaxResolver
	Prompter Prompter
	Logger   *log.Logger
}

// Window is a single open document. It is not safe for concurrent use:
// all calls must come from the goroutine that owns the window.
type Window struct {
	settings *config.Settings
	codecs   *codec.Registry
	detector Detector
	resolver SyntaxResolver
	prompter Prompter
	log      *log.Logger

	buf  *file.Buffer
	hist *history.History

	path     string
	title    string
	showPath bool

	encoding      string
	encodingValid bool
	codec         *codec.Codec // last valid codec, used for decoding and encoding
	bom           bool
	lineEnding    codec.LineEnding
	syntax        detect.Syntax

	disk      *file.DiskDetails
	outOfDate bool

	observers map[Observer]struct{}
}

// NewWindow returns a window holding an empty new document.
func NewWindow(opts Options) *Window {
	w := &Window{
		settings:  opts.Settings,
		codecs:    opts.Codecs,
		detector:  opts.Detector,
		resolver:  opts.Syntax,
		prompter:  opts.Prompter,
		log:       opts.Logger,
		observers: make(map[Observer]struct{}),
	}
	if w.settings == nil {
		w.settings = config.Default()
	}
	if w.codecs == nil {
		w.codecs = codec.Default()
	}
	if w.detector == nil {
		w.detector = detect.NewDetector(w.codecs)
	}
	if w.resolver == nil {
		w.resolver = detect.NewChromaResolver()
	}
	if w.prompter == nil {
		w.prompter = declining{}
	}
	if w.log == nil {
		w.log = log.Default()
	}
	w.showPath = w.settings.ShowFilePath

	utf8, err := w.codecs.Resolve(codec.UTF8)
	if err != nil {
		panic(err)
	}
	w.codec = utf8

	w.buf = file.NewBuffer(nil)
	w.hist = history.New(w, w.buf)
	w.buf.SetEditListener(w.bufferEdited)
	w.hist.SetChangeListener(w.historyChanged)

	w.resetDocument()
	return w
}

// AddObserver adds o as an observer of this window's state.
func (w *Window) AddObserver(o Observer) {
	w.observers[o] = struct{}{}
}

// DelObserver removes o as an observer.
func (w *Window) DelObserver(o Observer) error {
	if _, exists := w.observers[o]; exists {
		delete(w.observers, o)
		return nil
	}
	return fmt.Errorf("can't find observer in Window.DelObserver")
}

func (w *Window) publish(kind EventKind) {
	if len(w.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, Status: w.Status()}
	for o := range w.observers {
		o.StateChanged(ev)
	}
}

// Status returns a snapshot of the window's state.
func (w *Window) Status() Status {
	return Status{
		Title:         w.title,
		Path:          w.path,
		Encoding:      w.encoding,
		EncodingValid: w.encodingValid,
		LineEnding:    w.lineEnding,
		Syntax:        w.syntax,
		BOM:           w.bom,
		Modified:      w.hist.IsModified(),
		CanUndo:       w.hist.CanUndo(),
		CanRedo:       w.hist.CanRedo(),
		OutOfDate:     w.outOfDate,
	}
}

func (w *Window) Buffer() *file.Buffer         { return w.buf }
func (w *Window) History() *history.History    { return w.hist }
func (w *Window) Path() string                 { return w.path }
func (w *Window) Title() string                { return w.title }
func (w *Window) Encoding() string             { return w.encoding }
func (w *Window) EncodingValid() bool          { return w.encodingValid }
func (w *Window) Codec() *codec.Codec          { return w.codec }
func (w *Window) LineEnding() codec.LineEnding { return w.lineEnding }
func (w *Window) UTFBOM() bool                 { return w.bom }
func (w *Window) Syntax() detect.Syntax        { return w.syntax }
func (w *Window) IsOutOfDate() bool            { return w.outOfDate }

// Text returns the document's content.
func (w *Window) Text() string { return w.buf.String() }

// IsModified reports whether the document differs from its last save.
func (w *Window) IsModified() bool { return w.hist.IsModified() }

func (w *Window) CanUndo() bool { return w.hist.CanUndo() }
func (w *Window) CanRedo() bool { return w.hist.CanRedo() }

// Undo reverts the most recent text edit or metadata change.
func (w *Window) Undo() {
	w.buf.Commit()
	w.hist.Undo()
}

func (w *Window) Redo() {
	w.buf.Commit()
	w.hist.Redo()
}

func (w *Window) bufferEdited() {
	w.hist.Push(history.NewTextEdit())
}

func (w *Window) historyChanged() {
	w.publish(HistoryChanged)
	w.updateTitle()
}

// SetEncoding sets the encoding without recording it in the history. An
// unknown name is still shown but marked invalid, and the previous valid
// codec remains in use for loading and saving.
func (w *Window) SetEncoding(name string) {
	c, err := w.codecs.Resolve(name)
	if err != nil {
		w.log.Printf("selected invalid codec %q: %v", name, err)
		w.encodingValid = false
	} else {
		w.codec = c
		w.encodingValid = true
	}
	w.encoding = name
	w.publish(EncodingChanged)
}

// SetLineEndingMode sets the line ending without recording it.
func (w *Window) SetLineEndingMode(le codec.LineEnding) {
	w.lineEnding = le
	w.publish(LineEndingChanged)
}

// SetUTFBOM sets whether saving writes a byte-order mark, without
// recording it.
func (w *Window) SetUTFBOM(on bool) {
	w.bom = on
	w.publish(BOMChanged)
}

// SetSyntax selects the highlighting grammar. Syntax is never part of the
// history.
func (w *Window) SetSyntax(s detect.Syntax) {
	w.syntax = s
	w.publish(SyntaxChanged)
}

// SetShowFilePath chooses between the full path and the base name in the
// title.
func (w *Window) SetShowFilePath(on bool) {
	w.showPath = on
	w.updateTitle()
}

// record performs a metadata change. A document without a file path has
// no history worth keeping so it changes silently. Otherwise the change is
// pushed as a command after closing the buffer's open action, so that
// typing that follows starts a new edit.
func (w *Window) record(cmd *history.Command, silently func()) {
	if w.path == "" {
		silently()
		return
	}
	w.buf.Commit()
	w.hist.Push(cmd)
}

// ChangeEncoding is the user-facing way to switch encodings. Valid names
// are stored in canonical form.
func (w *Window) ChangeEncoding(name string) {
	if c, err := w.codecs.Resolve(name); err == nil {
		name = c.Name
	}
	if name == w.encoding {
		return
	}
	w.record(history.NewEncodingChange(w.encoding, name), func() { w.SetEncoding(name) })
}

func (w *Window) ChangeLineEndingMode(le codec.LineEnding) {
	if le == w.lineEnding {
		return
	}
	w.record(history.NewLineEndingChange(w.lineEnding, le), func() { w.SetLineEndingMode(le) })
}

// CycleLineEndingMode steps through CR, LF and CRLF.
func (w *Window) CycleLineEndingMode() {
	w.ChangeLineEndingMode(w.lineEnding.Next())
}

// ChangeUTFBOM toggles the byte-order mark.
func (w *Window) ChangeUTFBOM() {
	on := !w.bom
	w.record(history.NewBOMChange(w.bom, on), func() { w.SetUTFBOM(on) })
}

func (w *Window) displayName() string {
	switch {
	case w.path == "":
		return Untitled
	case w.showPath:
		return w.path
	}
	return filepath.Base(w.path)
}

func (w *Window) updateTitle() {
	t := w.displayName() + " - " + AppName
	if w.hist.IsModified() {
		t = "* " + t
	}
	if t == w.title {
		return
	}
	w.title = t
	w.publish(TitleChanged)
}
