package browse

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog/log"
)

// highlighter colours source lines. A zero highlighter returns lines as-is.
type highlighter struct {
	enabled bool
	style   *chroma.Style
}

func newHighlighter(enabled bool, styleName string) highlighter {
	return highlighter{
		enabled: enabled,
		style:   chromastyles.Get(styleName),
	}
}

// lines splits content into lines and highlights each one for the lexer
// matching filename. Highlighting failures fall back to plain text.
func (h highlighter) lines(filename string, content string) []string {
	plain := splitLines(content)
	if !h.enabled || content == "" {
		return plain
	}

	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, content)
	if err != nil {
		log.Debug().Err(err).Str("file", filename).Msg("tokenise failed")
		return plain
	}

	formatter := formatters.Get("terminal16m")
	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())

	out := make([]string, 0, len(tokenLines))
	var buf bytes.Buffer
	for _, tokens := range tokenLines {
		buf.Reset()
		if err := formatter.Format(&buf, h.style, chroma.Literator(tokens...)); err != nil {
			return plain
		}
		out = append(out, strings.ReplaceAll(buf.String(), "\n", ""))
	}

	// Tokenising can drop a trailing empty line; keep the counts aligned.
	for len(out) < len(plain) {
		out = append(out, "")
	}
	return out[:len(plain)]
}

// splitLines splits content into lines without a phantom last line for a
// trailing newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
