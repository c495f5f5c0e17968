package detect

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/textpad/codec"
)

func encode(t *testing.T, name, text string, le codec.LineEnding, bom bool) []byte {
	t.Helper()
	c, err := codec.Resolve(name)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if bom {
		b.Write(c.BOM)
	}
	w := c.NewEncodeWriter(&b, le)
	if _, err := io.WriteString(w, text); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func TestDetect(t *testing.T) {
	const text = "first line\nsecond wörd\nthird\n"
	d := NewDetector(codec.Default())

	for _, name := range []string{"UTF-8", "UTF-16LE", "UTF-16BE", "UTF-32LE", "UTF-32BE"} {
		for _, le := range []codec.LineEnding{codec.CR, codec.LF, codec.CRLF} {
			for _, bom := range []bool{false, true} {
				c, _ := codec.Resolve(name)
				want := Result{Encoding: name, LineEnding: le}
				if bom {
					want.BOMOffset = len(c.BOM)
				}
				got := d.Detect(encode(t, name, text, le, bom), "x.txt")
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("%s %v bom=%v mismatch (-want +got):\n%s", name, le, bom, diff)
				}
			}
		}
	}
}

func TestDetectLegacyAndEmpty(t *testing.T) {
	d := NewDetector(codec.Default())
	d.Default = codec.CRLF

	got := d.Detect(nil, "")
	if diff := cmp.Diff(Result{Encoding: codec.UTF8, LineEnding: codec.CRLF}, got); diff != "" {
		t.Errorf("empty mismatch (-want +got):\n%s", diff)
	}

	got = d.Detect([]byte("caf\xe9\r\n"), "")
	if diff := cmp.Diff(Result{Encoding: Legacy, LineEnding: codec.CRLF}, got); diff != "" {
		t.Errorf("legacy mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectTruncatedPrefix(t *testing.T) {
	d := NewDetector(codec.Default())
	// The prefix ends inside a multi-byte sequence and splits a CRLF.
	got := d.Detect([]byte("a\r\nb\r\n世\xe7"), "")
	if got.Encoding != codec.UTF8 || got.LineEnding != codec.CRLF {
		t.Errorf("got %+v", got)
	}
	got = d.Detect([]byte("a\r\nb\r"), "")
	if got.LineEnding != codec.CRLF {
		t.Errorf("split CRLF detected as %v", got.LineEnding)
	}
}

func TestMixedLineEndings(t *testing.T) {
	d := NewDetector(codec.Default())
	if got := d.Detect([]byte("a\nb\nc\r\n"), "").LineEnding; got != codec.LF {
		t.Errorf("majority LF detected as %v", got)
	}
	if got := d.Detect([]byte("a\rb\rc\n"), "").LineEnding; got != codec.CR {
		t.Errorf("majority CR detected as %v", got)
	}
}
