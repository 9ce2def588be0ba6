package output

import (
	"fmt"
	"io"
)

// MarkdownRenderer produces markdown output for documentation/tickets.
type MarkdownRenderer struct {
	w io.Writer
}

func (r *MarkdownRenderer) RenderReport(report *Report) {
	fmt.Fprintf(r.w, "## tidbcheck — `%s`\n\n", report.Path)

	if len(report.Warnings) == 0 {
		fmt.Fprintf(r.w, "No TiDB incompatibilities found.\n\n")
	} else {
		fmt.Fprintf(r.w, "**%d warning(s)**\n\n", len(report.Warnings))
		fmt.Fprintf(r.w, "| Line | Warning |\n|---|---|\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(r.w, "| %d | %s |\n", warning.Line, warning.Message)
		}
		fmt.Fprintln(r.w)
	}

	if len(report.VerifyNotes) > 0 {
		fmt.Fprintf(r.w, "### Verification notes\n\n")
		for _, note := range report.VerifyNotes {
			fmt.Fprintf(r.w, "- %s\n", note)
		}
		fmt.Fprintln(r.w)
	}

	if report.Applied {
		fmt.Fprintf(r.w, "> Schema file has been modified in place: `%s`. ", report.Path)
		fmt.Fprintf(r.w, "Review the file and test thoroughly before using it with TiDB.\n\n")
	}
}
