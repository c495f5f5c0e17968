package codec

import (
	"fmt"
	"runtime"
	"strings"
)

// LineEnding is the convention used to terminate lines on disk. Inside a
// window text is always held with bare LF line terminators.
type LineEnding int

const (
	CR LineEnding = iota
	LF
	CRLF
)

func (le LineEnding) String() string {
	switch le {
	case CR:
		return "CR"
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	}
	return fmt.Sprintf("LineEnding(%d)", int(le))
}

// Next returns the following mode in the cycle CR, LF, CRLF, CR.
func (le LineEnding) Next() LineEnding {
	switch le {
	case CR:
		return LF
	case LF:
		return CRLF
	}
	return CR
}

// Terminator returns the bytes written at the end of each line.
func (le LineEnding) Terminator() []byte {
	switch le {
	case CR:
		return []byte{'\r'}
	case CRLF:
		return []byte{'\r', '\n'}
	}
	return []byte{'\n'}
}

// ParseLineEnding accepts CR, LF or CRLF in any case.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CR":
		return CR, nil
	case "LF":
		return LF, nil
	case "CRLF":
		return CRLF, nil
	}
	return LF, fmt.Errorf("unknown line ending %q", s)
}

// PlatformLineEnding is the default for new documents.
func PlatformLineEnding() LineEnding {
	if runtime.GOOS == "windows" {
		return CRLF
	}
	// macOS uses LF as well.
	return LF
}
