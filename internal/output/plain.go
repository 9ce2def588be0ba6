package output

import (
	"fmt"
	"io"
)

// PlainRenderer produces unformatted text output safe for piping. Warning
// lines follow the grep-friendly file:line format.
type PlainRenderer struct {
	w io.Writer
}

func (r *PlainRenderer) RenderReport(report *Report) {
	for _, warning := range report.Warnings {
		fmt.Fprintf(r.w, "%s:%d : WARNING - %s\n", report.Path, warning.Line, warning.Message)
	}
	for _, note := range report.VerifyNotes {
		fmt.Fprintf(r.w, "%s : NOTE - %s\n", report.Path, note)
	}

	if report.Applied {
		fmt.Fprintf(r.w, "\nSchema file has been modified in place: %s\n", report.Path)
		fmt.Fprintln(r.w, "Incompatible features were removed or rewritten. Review the file and test thoroughly before using it with TiDB.")
	} else if report.Modified {
		fmt.Fprintf(r.w, "%s : run again with --apply to rewrite the file\n", report.Path)
	}
}
