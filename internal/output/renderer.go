package output

import (
	"io"

	"github.com/nethalo/tidbcheck/internal/scanner"
)

// Report is everything the renderers show for one scanned file.
type Report struct {
	Path        string
	Warnings    []scanner.Warning
	VerifyNotes []string // advisory notes from the post-rewrite verification pass
	Applied     bool     // the file was rewritten in place
	Modified    bool     // a rewrite changes (or would change) the file
}

// Renderer defines the output interface.
type Renderer interface {
	RenderReport(report *Report)
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format string, w io.Writer) Renderer {
	switch format {
	case "json":
		return &JSONRenderer{w: w}
	case "markdown":
		return &MarkdownRenderer{w: w}
	case "plain":
		return &PlainRenderer{w: w}
	default:
		return &TextRenderer{w: w}
	}
}
