// Package history keeps a single linear undo history that interleaves the
// text buffer's own edits with changes to a document's encoding, line
// endings and byte-order mark.
package history

// History is a list of commands, the position of the next command to redo
// and the position that matches the file on disk. A clean position of -1
// means the saved state can no longer be reached.
type History struct {
	target Target
	editor Editor

	cmds     []*Command
	current  int
	clean    int
	onChange func()
}

// New returns an empty, clean History.
func New(target Target, editor Editor) *History {
	return &History{target: target, editor: editor}
}

// SetChangeListener sets fn to be called after every operation that may
// change what IsModified, CanUndo or CanRedo report.
func (h *History) SetChangeListener(fn func()) {
	h.onChange = fn
}

func (h *History) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}

// Push discards any redoable commands, executes c and appends it.
func (h *History) Push(c *Command) {
	if h.clean > h.current {
		h.clean = -1
	}
	for i := h.current; i < len(h.cmds); i++ {
		h.cmds[i] = nil
	}
	h.cmds = h.cmds[:h.current]
	c.apply(h.target, h.editor)
	h.cmds = append(h.cmds, c)
	h.current++
	h.changed()
}

// Undo reverts the command before the current position. It does nothing
// at the start of the history.
func (h *History) Undo() {
	if h.current == 0 {
		return
	}
	h.current--
	h.cmds[h.current].invert(h.target, h.editor)
	h.changed()
}

// Redo re-executes the command at the current position. It does nothing
// at the end of the history.
func (h *History) Redo() {
	if h.current == len(h.cmds) {
		return
	}
	h.cmds[h.current].apply(h.target, h.editor)
	h.current++
	h.changed()
}

// MarkClean records the current position as matching the saved file.
func (h *History) MarkClean() {
	h.clean = h.current
	h.changed()
}

// Clear empties the history. The empty history is clean.
func (h *History) Clear() {
	h.cmds = nil
	h.current = 0
	h.clean = 0
	h.changed()
}

func (h *History) IsModified() bool { return h.current != h.clean }
func (h *History) CanUndo() bool    { return h.current > 0 }
func (h *History) CanRedo() bool    { return h.current < len(h.cmds) }

// Len is the number of commands, including redoable ones.
func (h *History) Len() int { return len(h.cmds) }

// Index is the current position.
func (h *History) Index() int { return h.current }

// Kinds lists the kinds of the recorded commands.
func (h *History) Kinds() []Kind {
	kinds := make([]Kind, len(h.cmds))
	for i, c := range h.cmds {
		kinds[i] = c.kind
	}
	return kinds
}
