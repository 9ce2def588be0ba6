package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONRenderer produces machine-readable JSON output, one document per file.
type JSONRenderer struct {
	w io.Writer
}

type jsonReport struct {
	Path         string        `json:"path"`
	WarningCount int           `json:"warning_count"`
	Warnings     []jsonWarning `json:"warnings,omitempty"`
	VerifyNotes  []string      `json:"verify_notes,omitempty"`
	Modified     bool          `json:"modified"`
	Applied      bool          `json:"applied"`
}

type jsonWarning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (r *JSONRenderer) RenderReport(report *Report) {
	out := jsonReport{
		Path:         report.Path,
		WarningCount: len(report.Warnings),
		VerifyNotes:  report.VerifyNotes,
		Modified:     report.Modified,
		Applied:      report.Applied,
	}
	for _, w := range report.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{Line: w.Line, Message: w.Message})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(r.w, `{"error": %q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(r.w, string(data))
}
