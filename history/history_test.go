package history

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/file"
)

type doc struct {
	Enc string
	LE  codec.LineEnding
	BOM bool
}

func (d *doc) Encoding() string                      { return d.Enc }
func (d *doc) SetEncoding(name string)               { d.Enc = name }
func (d *doc) LineEnding() codec.LineEnding          { return d.LE }
func (d *doc) SetLineEndingMode(le codec.LineEnding) { d.LE = le }
func (d *doc) UTFBOM() bool                          { return d.BOM }
func (d *doc) SetUTFBOM(on bool)                     { d.BOM = on }

func newDoc() (*doc, *History, *file.Buffer) {
	d := &doc{Enc: "UTF-8", LE: codec.LF}
	b := file.NewBuffer(nil)
	return d, New(d, b), b
}

func TestInverseLaw(t *testing.T) {
	d, h, _ := newDoc()
	cmds := []func() *Command{
		func() *Command { return NewEncodingChange(d.Enc, "UTF-16LE") },
		func() *Command { return NewLineEndingChange(d.LE, codec.CRLF) },
		func() *Command { return NewBOMChange(d.BOM, true) },
		func() *Command { return NewEncodingChange(d.Enc, "latin1") },
	}
	for i, mk := range cmds {
		before := *d
		h.Push(mk())
		after := *d
		h.Undo()
		if diff := cmp.Diff(before, *d); diff != "" {
			t.Errorf("step %d: undo after push (-want +got):\n%s", i, diff)
		}
		h.Redo()
		if diff := cmp.Diff(after, *d); diff != "" {
			t.Errorf("step %d: redo (-want +got):\n%s", i, diff)
		}
	}
	want := doc{Enc: "latin1", LE: codec.CRLF, BOM: true}
	if diff := cmp.Diff(want, *d); diff != "" {
		t.Errorf("final state (-want +got):\n%s", diff)
	}
	for h.CanUndo() {
		h.Undo()
	}
	if diff := cmp.Diff(doc{Enc: "UTF-8", LE: codec.LF}, *d); diff != "" {
		t.Errorf("fully undone (-want +got):\n%s", diff)
	}
}

func TestCleanDirty(t *testing.T) {
	d, h, _ := newDoc()
	h.Clear()
	h.MarkClean()
	if h.IsModified() {
		t.Fatal("modified after Clear and MarkClean")
	}
	h.Push(NewEncodingChange(d.Enc, "UTF-16BE"))
	if !h.IsModified() {
		t.Fatal("not modified after Push")
	}
	h.Undo()
	if h.IsModified() {
		t.Fatal("modified after undo to the clean index")
	}
	h.Redo()
	h.MarkClean()
	if h.IsModified() {
		t.Fatal("modified after MarkClean")
	}
	h.Undo()
	if !h.IsModified() {
		t.Fatal("not modified after undo past the clean index")
	}
}

func TestTruncation(t *testing.T) {
	d, h, _ := newDoc()
	h.Push(NewEncodingChange(d.Enc, "a"))
	h.Push(NewLineEndingChange(d.LE, codec.CR))
	h.Undo()
	h.Push(NewBOMChange(d.BOM, true))

	if diff := cmp.Diff([]Kind{EncodingChange, BOMChange}, h.Kinds()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if h.CanRedo() {
		t.Error("CanRedo after truncation")
	}
	h.Redo()
	if diff := cmp.Diff(doc{Enc: "a", LE: codec.LF, BOM: true}, *d); diff != "" {
		t.Errorf("redo was not a no-op (-want +got):\n%s", diff)
	}
}

func TestCleanIndexLost(t *testing.T) {
	d, h, _ := newDoc()
	h.Push(NewEncodingChange(d.Enc, "a"))
	h.Push(NewEncodingChange(d.Enc, "b"))
	h.MarkClean()
	h.Undo()
	h.Undo()
	h.Push(NewEncodingChange(d.Enc, "c"))
	for i := 0; h.CanUndo(); i++ {
		if !h.IsModified() {
			t.Fatalf("clean at undo step %d", i)
		}
		h.Undo()
	}
	if !h.IsModified() {
		t.Fatal("clean at start of history")
	}
	h.MarkClean()
	if h.IsModified() {
		t.Fatal("modified after MarkClean")
	}
}

func TestUndoRedoAtEnds(t *testing.T) {
	d, h, _ := newDoc()
	calls := 0
	h.SetChangeListener(func() { calls++ })
	h.Undo()
	h.Redo()
	if calls != 0 {
		t.Errorf("no-op undo/redo notified %d times", calls)
	}
	h.Push(NewEncodingChange(d.Enc, "x"))
	h.Undo()
	h.Redo()
	h.MarkClean()
	h.Clear()
	if calls != 5 {
		t.Errorf("got %d notifications; want 5", calls)
	}
	if h.Len() != 0 || h.Index() != 0 || h.IsModified() {
		t.Errorf("Clear left len %d index %d modified %v", h.Len(), h.Index(), h.IsModified())
	}
}

func TestInterleavedTextEdits(t *testing.T) {
	d, h, b := newDoc()
	b.SetEditListener(func() { h.Push(NewTextEdit()) })

	if err := b.Insert(0, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	b.Commit()
	h.Push(NewEncodingChange(d.Enc, "UTF-16LE"))
	if err := b.Insert(5, []byte(" world")); err != nil {
		t.Fatal(err)
	}
	b.Commit()

	if diff := cmp.Diff([]Kind{TextEdit, EncodingChange, TextEdit}, h.Kinds()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}

	type state struct {
		Text, Enc string
	}
	snap := func() state { return state{b.String(), d.Enc} }
	want := []state{
		{"hello", "UTF-16LE"},
		{"hello", "UTF-8"},
		{"", "UTF-8"},
	}
	for i, w := range want {
		h.Undo()
		if diff := cmp.Diff(w, snap()); diff != "" {
			t.Errorf("undo %d (-want +got):\n%s", i+1, diff)
		}
	}
	for h.CanRedo() {
		h.Redo()
	}
	if diff := cmp.Diff(state{"hello world", "UTF-16LE"}, snap()); diff != "" {
		t.Errorf("redo all (-want +got):\n%s", diff)
	}

	// Typing after undo discards the redoable edits in both histories.
	h.Undo()
	h.Undo()
	if err := b.Insert(5, []byte("!")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Kind{TextEdit, TextEdit}, h.Kinds()); diff != "" {
		t.Errorf("history after typing (-want +got):\n%s", diff)
	}
	if b.HasRedoableChanges() {
		t.Error("buffer kept redoable changes")
	}
	if got := b.String(); got != "hello!" {
		t.Errorf("buffer is %q", got)
	}
}

func TestMismatchedStatePanics(t *testing.T) {
	_, h, _ := newDoc()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("no panic")
		}
		if s, ok := r.(string); !ok || !strings.Contains(s, "EncodingChange") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	h.Push(NewEncodingChange("Shift_JIS", "UTF-8"))
}

func TestTextEditWithoutBufferActionPanics(t *testing.T) {
	_, h, _ := newDoc()
	h.Push(NewTextEdit())
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	h.Undo()
}
