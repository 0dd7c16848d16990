package review

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// writePatch renders a unified diff to the output stream, syntax highlighted
// when color is enabled.
func (r *InteractiveReviewer) writePatch(patch string) error {
	if !r.cfg.Color {
		_, err := fmt.Fprint(r.out, patch)
		return err
	}

	if err := highlightPatch(r.out, patch); err != nil {
		// Plain text when the highlighter cannot process the patch.
		_, werr := fmt.Fprint(r.out, patch)
		return werr
	}
	return nil
}

// highlightPatch writes the patch through chroma's diff lexer and a
// 256-color terminal formatter.
func highlightPatch(w io.Writer, patch string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, patch)
	if err != nil {
		return err
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	style := styles.Get("github-dark")
	if style == nil {
		style = styles.Fallback
	}

	return formatter.Format(w, style, iterator)
}
