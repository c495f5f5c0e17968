// Package padtest contains utility functions that help with testing
// textpad windows.
package padtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/detect"
	"github.com/rjkroege/textpad/wind"
)

// Recorder is a wind.Observer that keeps the events it has seen.
type Recorder struct {
	mu     sync.Mutex
	events []wind.Event
}

func (r *Recorder) StateChanged(ev wind.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns the recorded events.
func (r *Recorder) Events() []wind.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]wind.Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []wind.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]wind.EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Last returns the most recent event of kind and whether there was one.
func (r *Recorder) Last(kind wind.EventKind) (wind.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return wind.Event{}, false
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Prompter is a scripted wind.Prompter. Each answer field is returned for
// every question of its kind, and every question is logged in Asked.
type Prompter struct {
	LargeFile bool
	Save      wind.Answer
	Discard   bool
	Reload    bool
	Filename  string // empty means the user cancelled the file dialog

	Asked  []string
	Errors []error
}

func (p *Prompter) ConfirmLargeFile(path string, size int64) bool {
	p.Asked = append(p.Asked, fmt.Sprintf("ConfirmLargeFile %s %d", filepath.Base(path), size))
	return p.LargeFile
}

func (p *Prompter) AskSave(title string) wind.Answer {
	p.Asked = append(p.Asked, "AskSave "+title)
	return p.Save
}

func (p *Prompter) ConfirmDiscard(title string) bool {
	p.Asked = append(p.Asked, "ConfirmDiscard "+title)
	return p.Discard
}

func (p *Prompter) ConfirmReload(title string) bool {
	p.Asked = append(p.Asked, "ConfirmReload "+title)
	return p.Reload
}

func (p *Prompter) SaveFilename(title string) (string, bool) {
	p.Asked = append(p.Asked, "SaveFilename "+title)
	return p.Filename, p.Filename != ""
}

func (p *Prompter) ReportError(err error) {
	p.Errors = append(p.Errors, err)
}

// Detector returns a fixed result.
type Detector struct {
	Result detect.Result
	Calls  int
}

func (d *Detector) Detect(prefix []byte, filename string) detect.Result {
	d.Calls++
	return d.Result
}

// Resolver classifies by fixed tables.
type Resolver struct {
	Content  map[string]detect.Syntax // keyed by the whole sniffed text
	Filename map[string]detect.Syntax // keyed by base name
}

func (r *Resolver) DefinitionForContent(text []byte) detect.Syntax {
	return r.Content[string(text)]
}

func (r *Resolver) DefinitionForFilename(name string) detect.Syntax {
	return r.Filename[filepath.Base(name)]
}

// WriteFile creates name in a temporary directory with data and returns
// its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("can't write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("can't read %s: %v", path, err)
	}
	return b
}

// Encode returns text in the named encoding with LF line terminators
// rewritten for le, optionally preceded by the encoding's BOM.
func Encode(t testing.TB, name, text string, le codec.LineEnding, bom bool) []byte {
	t.Helper()
	c, err := codec.Resolve(name)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if bom {
		out.Write(c.BOM)
	}
	w := c.NewEncodeWriter(&out, le)
	if _, err := w.Write([]byte(text)); err != nil {
		t.Fatalf("encoding %q as %s: %v", text, name, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("encoding %q as %s: %v", text, name, err)
	}
	return out.Bytes()
}

// NewWindow returns a window with p as its Prompter and a Recorder
// observing it.
func NewWindow(p *Prompter, opts wind.Options) (*wind.Window, *Recorder) {
	if p == nil {
		p = &Prompter{}
	}
	opts.Prompter = p
	w := wind.NewWindow(opts)
	r := &Recorder{}
	w.AddObserver(r)
	return w, r
}
