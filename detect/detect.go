// Package detect guesses the encoding, line-ending convention and syntax
// of a file from a prefix of its bytes and its name.
package detect

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/util"
)

// Result is what Detect learned from a prefix. Encoding is a codec name
// and BOMOffset is the number of leading bytes occupied by a byte-order
// mark (0 when there is none).
type Result struct {
	LineEnding codec.LineEnding
	Encoding   string
	BOMOffset  int
}

// Legacy is guessed for prefixes that are not valid UTF-8.
const Legacy = "windows-1252"

// Detector guesses encodings using BOMs and byte patterns. The zero value
// is not usable; use NewDetector.
type Detector struct {
	reg *codec.Registry

	// Default is used when the prefix holds no line terminators.
	Default codec.LineEnding
}

func NewDetector(reg *codec.Registry) *Detector {
	return &Detector{reg: reg, Default: codec.PlatformLineEnding()}
}

// bomOrder lists BOM-carrying codecs so that UTF-32LE is tried before the
// UTF-16LE BOM it begins with.
var bomOrder = []string{"UTF-32LE", "UTF-32BE", "UTF-8", "UTF-16LE", "UTF-16BE"}

// Detect examines prefix only. The filename is currently unused but is part
// of the contract so that name-based heuristics can be added.
func (d *Detector) Detect(prefix []byte, filename string) Result {
	for _, name := range bomOrder {
		c, err := d.reg.Resolve(name)
		if err != nil {
			continue
		}
		if c.HasBOM(prefix) {
			return Result{
				Encoding:   c.Name,
				BOMOffset:  len(c.BOM),
				LineEnding: d.lineEnding(c, prefix[len(c.BOM):]),
			}
		}
	}
	name := guessWithoutBOM(prefix)
	c, err := d.reg.Resolve(name)
	if err != nil {
		util.InternalError("builtin codec missing", err)
	}
	return Result{Encoding: c.Name, LineEnding: d.lineEnding(c, prefix)}
}

// guessWithoutBOM recognises UTF-32 and UTF-16 from the position of zero
// bytes, which is reliable for text that is mostly ASCII or Latin-1.
func guessWithoutBOM(p []byte) string {
	if n := len(p) / 4; n > 0 {
		var z [4]int
		for i := 0; i < n*4; i++ {
			if p[i] == 0 {
				z[i%4]++
			}
		}
		switch {
		case z[2] == n && z[3] == n && z[0] == 0:
			return "UTF-32LE"
		case z[0] == n && z[1] == n && z[3] == 0:
			return "UTF-32BE"
		}
	}
	if n := len(p) / 2; n > 0 {
		var z [2]int
		for i := 0; i < n*2; i++ {
			if p[i] == 0 {
				z[i%2]++
			}
		}
		switch {
		case z[1]*2 >= n && z[0] == 0:
			return "UTF-16LE"
		case z[0]*2 >= n && z[1] == 0:
			return "UTF-16BE"
		}
	}
	if utf8.Valid(util.ValidPrefix(p)) {
		return codec.UTF8
	}
	return Legacy
}

// lineEnding decodes p and reports the most frequent terminator.
func (d *Detector) lineEnding(c *codec.Codec, p []byte) codec.LineEnding {
	text, err := io.ReadAll(c.Encoding.NewDecoder().Reader(bytes.NewReader(p)))
	if err != nil {
		text = p
	}
	// A trailing CR may be the first half of a CRLF cut off by the prefix.
	text = bytes.TrimSuffix(text, []byte{'\r'})

	var cr, lf, crlf int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}
	switch {
	case cr == 0 && lf == 0 && crlf == 0:
		return d.Default
	case crlf >= lf && crlf >= cr:
		return codec.CRLF
	case lf >= cr:
		return codec.LF
	}
	return codec.CR
}
