package wind

import (
	"fmt"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/detect"
)

// EventKind says which part of a window's state changed.
type EventKind int

const (
	TitleChanged EventKind = iota
	EncodingChanged
	LineEndingChanged
	SyntaxChanged
	BOMChanged
	// HistoryChanged follows every change to the undo history and so to
	// the modified flag and undo/redo availability.
	HistoryChanged
	// FileChanged follows a load, a new document or a save that changed
	// the file identity.
	FileChanged
	// OutOfDate means the file on disk no longer matches what was loaded
	// or saved.
	OutOfDate
)

func (k EventKind) String() string {
	switch k {
	case TitleChanged:
		return "TitleChanged"
	case EncodingChanged:
		return "EncodingChanged"
	case LineEndingChanged:
		return "LineEndingChanged"
	case SyntaxChanged:
		return "SyntaxChanged"
	case BOMChanged:
		return "BOMChanged"
	case HistoryChanged:
		return "HistoryChanged"
	case FileChanged:
		return "FileChanged"
	case OutOfDate:
		return "OutOfDate"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Status is a snapshot of everything a status bar, title bar or menu
// needs to show.
type Status struct {
	Title         string
	Path          string
	Encoding      string
	EncodingValid bool
	LineEnding    codec.LineEnding
	Syntax        detect.Syntax
	BOM           bool
	Modified      bool
	CanUndo       bool
	CanRedo       bool
	OutOfDate     bool
}

// Event is delivered to observers after the change it names.
type Event struct {
	Kind   EventKind
	Status Status
}

// Observer implementations can register themselves with a Window to be
// told of its state changes. An observer may be told of a value that has
// not changed and must simply refresh.
type Observer interface {
	StateChanged(ev Event)
}

// ObserverFunc adapts a function to the Observer interface. Functions are
// not comparable, so register a pointer to an ObserverFunc.
type ObserverFunc func(ev Event)

func (f ObserverFunc) StateChanged(ev Event) { f(ev) }
