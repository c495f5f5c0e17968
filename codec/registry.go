// Package codec names the character encodings a window can load and save,
// and provides streaming decoders and encoders that also translate line
// endings.
package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// ErrUnknownCodec is returned (wrapped) by Resolve for names that do not
// identify a supported encoding.
var ErrUnknownCodec = errors.New("unknown codec")

// UTF8 is the name of the default codec.
const UTF8 = "UTF-8"

// Codec pairs a canonical encoding name with its decoder and encoder.
type Codec struct {
	Name     string
	Unicode  bool   // a Unicode encoding that may carry a BOM
	BOM      []byte // the byte-order mark written when requested
	Encoding encoding.Encoding
}

func (c *Codec) String() string { return c.Name }

// Registry maps names and aliases to codecs.
type Registry struct {
	codecs []*Codec
	byKey  map[string]*Codec
}

// NewRegistry returns a registry holding the built-in codec table.
func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[string]*Codec)}
	for _, e := range builtins {
		c := &Codec{Name: e.name, Unicode: e.bom != nil, BOM: e.bom, Encoding: e.enc}
		r.codecs = append(r.codecs, c)
		r.byKey[key(e.name)] = c
		for _, a := range e.aliases {
			r.byKey[key(a)] = c
		}
	}
	return r
}

type builtin struct {
	name    string
	aliases []string
	bom     []byte
	enc     encoding.Encoding
}

var builtins = []builtin{
	{UTF8, []string{"utf8", "unicode-1-1-utf-8"}, []byte{0xEF, 0xBB, 0xBF}, unicode.UTF8},
	{"UTF-16LE", []string{"utf-16", "ucs-2"}, []byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{"UTF-16BE", nil, []byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	{"UTF-32LE", []string{"utf-32", "ucs-4"}, []byte{0xFF, 0xFE, 0x00, 0x00}, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},
	{"UTF-32BE", nil, []byte{0x00, 0x00, 0xFE, 0xFF}, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)},
	{"ISO-8859-1", []string{"latin1", "l1", "iso_8859-1"}, nil, charmap.ISO8859_1},
	{"ISO-8859-2", []string{"latin2"}, nil, charmap.ISO8859_2},
	{"ISO-8859-5", []string{"cyrillic"}, nil, charmap.ISO8859_5},
	{"ISO-8859-7", []string{"greek"}, nil, charmap.ISO8859_7},
	{"ISO-8859-15", []string{"latin9"}, nil, charmap.ISO8859_15},
	{"windows-1250", []string{"cp1250"}, nil, charmap.Windows1250},
	{"windows-1251", []string{"cp1251"}, nil, charmap.Windows1251},
	{"windows-1252", []string{"cp1252", "ansi"}, nil, charmap.Windows1252},
	{"KOI8-R", nil, nil, charmap.KOI8R},
	{"KOI8-U", nil, nil, charmap.KOI8U},
	{"IBM437", []string{"cp437"}, nil, charmap.CodePage437},
	{"IBM850", []string{"cp850"}, nil, charmap.CodePage850},
	{"macintosh", []string{"mac-roman", "macroman"}, nil, charmap.Macintosh},
	{"Shift_JIS", []string{"sjis", "ms_kanji"}, nil, japanese.ShiftJIS},
	{"EUC-JP", nil, nil, japanese.EUCJP},
	{"ISO-2022-JP", nil, nil, japanese.ISO2022JP},
	{"EUC-KR", []string{"ks_c_5601-1987"}, nil, korean.EUCKR},
	{"GBK", []string{"cp936"}, nil, simplifiedchinese.GBK},
	{"GB18030", nil, nil, simplifiedchinese.GB18030},
	{"HZ-GB-2312", nil, nil, simplifiedchinese.HZGB2312},
	{"Big5", []string{"big5-hkscs"}, nil, traditionalchinese.Big5},
}

// key folds case and drops punctuation so that "utf_8", "UTF8" and
// "utf-8" all find the same codec.
func key(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case '-', '_', ' ', '.':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Resolve returns the codec for name. Names outside the built-in table are
// looked up in the IANA index. Unknown names return an error wrapping
// ErrUnknownCodec that carries suggestions.
func (r *Registry) Resolve(name string) (*Codec, error) {
	if c, ok := r.byKey[key(name)]; ok {
		return c, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		for _, c := range r.codecs {
			if c.Encoding == enc {
				return c, nil
			}
		}
		cname, err := ianaindex.IANA.Name(enc)
		if err != nil {
			cname = name
		}
		if c, ok := r.byKey[key(cname)]; ok {
			return c, nil
		}
		return &Codec{Name: cname, Encoding: enc}, nil
	}
	if s := r.Suggest(name); len(s) > 0 {
		return nil, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownCodec, name, strings.Join(s, ", "))
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCodec, name)
}

// Valid reports whether name resolves.
func (r *Registry) Valid(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Names lists the canonical names of the built-in codecs in table order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for _, c := range r.codecs {
		names = append(names, c.Name)
	}
	return names
}

// Suggest returns up to three canonical names closest to name.
func (r *Registry) Suggest(name string) []string {
	const maxDistance = 3
	type cand struct {
		name string
		d    int
	}
	best := make(map[string]int)
	k := key(name)
	for alias, c := range r.byKey {
		d := levenshtein.ComputeDistance(k, alias)
		if d > maxDistance {
			continue
		}
		if old, ok := best[c.Name]; !ok || d < old {
			best[c.Name] = d
		}
	}
	cands := make([]cand, 0, len(best))
	for n, d := range best {
		cands = append(cands, cand{n, d})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].d != cands[j].d {
			return cands[i].d < cands[j].d
		}
		return cands[i].name < cands[j].name
	})
	var out []string
	for i := 0; i < len(cands) && i < 3; i++ {
		out = append(out, cands[i].name)
	}
	return out
}

var std = NewRegistry()

// Default returns the shared registry.
func Default() *Registry { return std }

// Resolve looks name up in the shared registry.
func Resolve(name string) (*Codec, error) { return std.Resolve(name) }
