package output

import (
	"fmt"
	"io"
	"strings"
)

// TextRenderer produces Lip Gloss styled terminal output.
type TextRenderer struct {
	w io.Writer
}

func (r *TextRenderer) RenderReport(report *Report) {
	width := 72

	header := TitleStyle.Render(fmt.Sprintf("tidbcheck — %s", report.Path))
	fmt.Fprintln(r.w)

	if len(report.Warnings) == 0 && len(report.VerifyNotes) == 0 {
		body := SafeText.Render(IconSafe+" No TiDB incompatibilities found") + "\n" +
			MutedText.Render("Schema is compatible with the current rule set.")
		fmt.Fprintln(r.w, SafeBoxStyle.Width(width).Render(header+"\n"+body))
		r.renderApplied(report)
		return
	}

	var lines []string
	for _, warning := range report.Warnings {
		lines = append(lines,
			LineNumStyle.Render(fmt.Sprintf("%d", warning.Line))+" "+
				WarningText.Render(IconWarning)+" "+warning.Message)
	}
	for _, note := range report.VerifyNotes {
		lines = append(lines,
			LineNumStyle.Render("-")+" "+
				MutedText.Render(IconInfo+" "+note))
	}

	summary := WarningText.Render(fmt.Sprintf("%d warning(s)", len(report.Warnings)))
	box := WarningBoxStyle.Width(width).Render(
		header + "\n" + summary + "\n" + strings.Join(lines, "\n"))
	fmt.Fprintln(r.w, box)

	r.renderApplied(report)
}

func (r *TextRenderer) renderApplied(report *Report) {
	switch {
	case report.Applied:
		fmt.Fprintln(r.w, MutedText.Render(
			fmt.Sprintf("Schema file has been modified in place: %s", report.Path)))
		fmt.Fprintln(r.w, MutedText.Render(
			"Incompatible features were removed or rewritten. Review the file and test thoroughly before using it with TiDB."))
	case report.Modified:
		fmt.Fprintln(r.w, MutedText.Render(
			"Run again with --apply to rewrite the file."))
	}
	fmt.Fprintln(r.w)
}
