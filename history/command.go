package history

import (
	"fmt"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/util"
)

// Kind distinguishes the variants of Command.
type Kind int

const (
	// TextEdit wraps one action of the buffer's native undo.
	TextEdit Kind = iota
	EncodingChange
	LineEndingChange
	BOMChange
)

func (k Kind) String() string {
	switch k {
	case TextEdit:
		return "TextEdit"
	case EncodingChange:
		return "EncodingChange"
	case LineEndingChange:
		return "LineEndingChange"
	case BOMChange:
		return "BOMChange"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Target is the document state that metadata commands act on.
type Target interface {
	Encoding() string
	SetEncoding(name string)
	LineEnding() codec.LineEnding
	SetLineEndingMode(le codec.LineEnding)
	UTFBOM() bool
	SetUTFBOM(on bool)
}

// Editor is the buffer's native undo. Both methods return a negative
// offset when there was nothing to undo or redo.
type Editor interface {
	Undo() (off, n int64)
	Redo() (off, n int64)
}

// Command is one undoable operation. Only the fields of its Kind are set.
type Command struct {
	kind Kind

	// done is true while a TextEdit's change is present in the buffer.
	done bool

	oldEnc, newEnc string
	oldLE, newLE   codec.LineEnding
	oldBOM, newBOM bool
}

// NewTextEdit records a buffer action that has already been performed.
func NewTextEdit() *Command {
	return &Command{kind: TextEdit, done: true}
}

func NewEncodingChange(from, to string) *Command {
	return &Command{kind: EncodingChange, oldEnc: from, newEnc: to}
}

func NewLineEndingChange(from, to codec.LineEnding) *Command {
	return &Command{kind: LineEndingChange, oldLE: from, newLE: to}
}

func NewBOMChange(from, to bool) *Command {
	return &Command{kind: BOMChange, oldBOM: from, newBOM: to}
}

func (c *Command) Kind() Kind { return c.kind }

func (c *Command) String() string {
	switch c.kind {
	case EncodingChange:
		return fmt.Sprintf("%v %s -> %s", c.kind, c.oldEnc, c.newEnc)
	case LineEndingChange:
		return fmt.Sprintf("%v %v -> %v", c.kind, c.oldLE, c.newLE)
	case BOMChange:
		return fmt.Sprintf("%v %v -> %v", c.kind, c.oldBOM, c.newBOM)
	}
	return c.kind.String()
}

func (c *Command) apply(t Target, ed Editor) {
	c.exec(t, ed, false)
}

func (c *Command) invert(t Target, ed Editor) {
	c.exec(t, ed, true)
}

// exec moves the target from one side of the command to the other. The
// target must be on the starting side.
func (c *Command) exec(t Target, ed Editor, inverse bool) {
	switch c.kind {
	case TextEdit:
		switch {
		case inverse && c.done:
			if off, _ := ed.Undo(); off < 0 {
				util.InternalError("undo text edit", fmt.Errorf("buffer has no action to undo"))
			}
			c.done = false
		case !inverse && !c.done:
			if off, _ := ed.Redo(); off < 0 {
				util.InternalError("redo text edit", fmt.Errorf("buffer has no action to redo"))
			}
			c.done = true
		case !inverse && c.done:
			// The buffer performed the edit before it was pushed.
		default:
			util.InternalError("undo text edit", fmt.Errorf("edit is not applied"))
		}
	case EncodingChange:
		from, to := c.oldEnc, c.newEnc
		if inverse {
			from, to = to, from
		}
		if got := t.Encoding(); got != from {
			util.InternalError("apply "+c.String(), fmt.Errorf("encoding is %q", got))
		}
		t.SetEncoding(to)
	case LineEndingChange:
		from, to := c.oldLE, c.newLE
		if inverse {
			from, to = to, from
		}
		if got := t.LineEnding(); got != from {
			util.InternalError("apply "+c.String(), fmt.Errorf("line ending is %v", got))
		}
		t.SetLineEndingMode(to)
	case BOMChange:
		from, to := c.oldBOM, c.newBOM
		if inverse {
			from, to = to, from
		}
		if got := t.UTFBOM(); got != from {
			util.InternalError("apply "+c.String(), fmt.Errorf("BOM flag is %v", got))
		}
		t.SetUTFBOM(to)
	default:
		util.InternalError("apply command", fmt.Errorf("unknown kind %v", c.kind))
	}
}
