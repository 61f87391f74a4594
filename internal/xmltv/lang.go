package xmltv

import (
	"strings"

	"github.com/snapetech/guidescan/internal/xmlcur"
)

// langValue is one (text, language) pair from a run of same-named siblings.
type langValue struct {
	Text string
	Lang string
}

// collectRun consumes the run of consecutive sibling elements sharing the
// current element's tag name and returns every (text, lang) pair in document
// order. The run ends at the first differently-named sibling (the cursor is
// left on it) or at the parent's close tag (the cursor is left past it).
// The run is never empty: the current element contributes the first pair.
func collectRun(c *xmlcur.Cursor) ([]langValue, error) {
	name := c.Name()
	var pairs []langValue
	for {
		lang, _ := c.Attr("lang")
		text, err := c.Text()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, langValue{Text: text, Lang: lang})
		ok, err := c.NextSibling()
		if err != nil {
			return nil, err
		}
		if !ok || c.Name() != name {
			return pairs, nil
		}
	}
}

// pickText resolves a run to a single value. Precedence: first pair whose
// language matches want case-insensitively, else first pair with no
// language, else the first pair. An empty want matches no-language pairs
// through the first rule, not as "no preference".
func pickText(pairs []langValue, want string) string {
	for _, p := range pairs {
		if strings.EqualFold(p.Lang, want) {
			return p.Text
		}
	}
	for _, p := range pairs {
		if p.Lang == "" {
			return p.Text
		}
	}
	return pairs[0].Text
}

// filterTexts resolves a run to many values: if any pair's language equals
// want exactly, only those pairs are kept; otherwise every pair is kept.
// Emitted in document order.
func filterTexts(pairs []langValue, want string) []string {
	exact := false
	for _, p := range pairs {
		if p.Lang == want {
			exact = true
			break
		}
	}
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if exact && p.Lang != want {
			continue
		}
		out = append(out, p.Text)
	}
	return out
}
