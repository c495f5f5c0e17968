package detect

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/sajari/fuzzy"
)

// Syntax names a highlighting grammar. The empty Syntax is plain text.
type Syntax string

// PlainText is shown for the empty Syntax.
const PlainText = "Plain Text"

func (s Syntax) String() string {
	if s == "" {
		return PlainText
	}
	return string(s)
}

// ChromaResolver classifies files with the chroma lexer registry.
type ChromaResolver struct {
	once  sync.Once
	model *fuzzy.Model
	names map[string]string // lower-case name to lexer name
}

func NewChromaResolver() *ChromaResolver {
	return &ChromaResolver{}
}

func syntaxOf(l chroma.Lexer) Syntax {
	if l == nil {
		return ""
	}
	return Syntax(l.Config().Name)
}

// DefinitionForContent sniffs text, which should be decoded UTF-8.
func (r *ChromaResolver) DefinitionForContent(text []byte) Syntax {
	if len(text) == 0 {
		return ""
	}
	return syntaxOf(lexers.Analyse(string(text)))
}

// DefinitionForFilename matches the base name of name against lexer
// filename patterns.
func (r *ChromaResolver) DefinitionForFilename(name string) Syntax {
	if name == "" {
		return ""
	}
	return syntaxOf(lexers.Match(filepath.Base(name)))
}

// Names lists the lexer names in sorted order.
func (r *ChromaResolver) Names() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}

// Lookup returns the syntax for a lexer name or alias. Unknown names give
// an error with suggestions.
func (r *ChromaResolver) Lookup(name string) (Syntax, error) {
	if name == "" || strings.EqualFold(name, PlainText) {
		return "", nil
	}
	if l := lexers.Get(name); l != nil {
		return syntaxOf(l), nil
	}
	if s := r.Suggest(name); len(s) > 0 {
		return "", fmt.Errorf("unknown syntax %q (did you mean %s?)", name, strings.Join(s, ", "))
	}
	return "", fmt.Errorf("unknown syntax %q", name)
}

func (r *ChromaResolver) train() {
	r.model = fuzzy.NewModel()
	r.model.SetThreshold(1)
	r.model.SetDepth(2)
	r.names = make(map[string]string)
	var words []string
	for _, n := range lexers.Names(false) {
		k := strings.ToLower(n)
		r.names[k] = n
		words = append(words, k)
	}
	r.model.Train(words)
}

// Suggest returns lexer names within a small edit distance of name.
func (r *ChromaResolver) Suggest(name string) []string {
	r.once.Do(r.train)
	var out []string
	for _, s := range r.model.Suggestions(strings.ToLower(name), false) {
		if n, ok := r.names[s]; ok {
			out = append(out, n)
		}
	}
	return out
}
