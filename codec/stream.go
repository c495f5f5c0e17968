package codec

import (
	"bytes"
	"io"

	"golang.org/x/text/transform"
)

// NewDecodeReader returns a reader producing UTF-8 text with LF line
// terminators from r, which holds bytes in c's encoding without a BOM.
func (c *Codec) NewDecodeReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(c.Encoding.NewDecoder(), NewlineNormalizer()))
}

// NewEncodeWriter returns a writer that accepts UTF-8 text with LF line
// terminators and writes it to w in c's encoding, terminating lines per
// le. Runes the encoding cannot represent fail the write. The caller
// must Close the returned writer to flush it.
func (c *Codec) NewEncodeWriter(w io.Writer, le LineEnding) io.WriteCloser {
	return transform.NewWriter(w, transform.Chain(NewlineExpander(le), c.Encoding.NewEncoder()))
}

// HasBOM reports whether p starts with c's byte-order mark.
func (c *Codec) HasBOM(p []byte) bool {
	return len(c.BOM) > 0 && bytes.HasPrefix(p, c.BOM)
}
