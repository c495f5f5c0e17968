package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rjkroege/textpad/wind"
)

// linePrompter asks questions on a terminal. With yes set, every
// confirmation is granted without asking.
type linePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	yes    bool
	reload *bool // fixed answer to ConfirmReload when set
}

func newLinePrompter(in io.Reader, out io.Writer, yes bool) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out, yes: yes}
}

func (p *linePrompter) ask(format string, args ...interface{}) string {
	fmt.Fprintf(p.out, format, args...)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.ToLower(strings.TrimSpace(line))
}

func (p *linePrompter) confirm(format string, args ...interface{}) bool {
	if p.yes {
		return true
	}
	switch p.ask(format+" [y/N] ", args...) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *linePrompter) ConfirmLargeFile(path string, size int64) bool {
	return p.confirm("%s is %d bytes and may take a while to load. Load it?", path, size)
}

func (p *linePrompter) AskSave(title string) wind.Answer {
	if p.yes {
		return wind.Save
	}
	switch p.ask("Save changes to %s? [y/n/C] ", title) {
	case "y", "yes":
		return wind.Save
	case "n", "no":
		return wind.Discard
	}
	return wind.Cancel
}

func (p *linePrompter) ConfirmDiscard(title string) bool {
	return p.confirm("Discard changes to %s?", title)
}

func (p *linePrompter) ConfirmReload(title string) bool {
	if p.reload != nil {
		return *p.reload
	}
	return p.confirm("%s changed on disk. Reload it?", title)
}

// SaveFilename is never needed: every command names its output.
func (p *linePrompter) SaveFilename(title string) (string, bool) {
	return "", false
}

func (p *linePrompter) ReportError(err error) {
	fmt.Fprintf(p.out, "textpad: %v\n", err)
}
