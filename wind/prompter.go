package wind

import "fmt"

// Answer is the user's response to the save prompt.
type Answer int

const (
	Save Answer = iota
	Discard
	Cancel
)

func (a Answer) String() string {
	switch a {
	case Save:
		return "Save"
	case Discard:
		return "Discard"
	case Cancel:
		return "Cancel"
	}
	return fmt.Sprintf("Answer(%d)", int(a))
}

// Prompter presents the questions and messages a Window needs answered
// by the user. title is the window's current title.
type Prompter interface {
	// ConfirmLargeFile asks whether to load a file of size bytes.
	ConfirmLargeFile(path string, size int64) bool
	// AskSave offers to save a modified document before it is replaced.
	AskSave(title string) Answer
	// ConfirmDiscard asks whether modifications may be thrown away.
	ConfirmDiscard(title string) bool
	// ConfirmReload asks whether to reload a file changed on disk.
	ConfirmReload(title string) bool
	// SaveFilename asks for the name to save under.
	SaveFilename(title string) (string, bool)
	// ReportError shows a failed load or save.
	ReportError(err error)
}

// declining answers no to everything. It is used when a Window is built
// without a Prompter so that nothing is lost or loaded unasked.
type declining struct{}

func (declining) ConfirmLargeFile(string, int64) bool { return false }
func (declining) AskSave(string) Answer               { return Cancel }
func (declining) ConfirmDiscard(string) bool          { return false }
func (declining) ConfirmReload(string) bool           { return false }
func (declining) SaveFilename(string) (string, bool)  { return "", false }
func (declining) ReportError(error)                   {}
