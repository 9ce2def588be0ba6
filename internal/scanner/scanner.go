package scanner

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/nethalo/tidbcheck/internal/rules"
)

// Block boundary patterns. DELIMITER markers are matched exactly (trimmed,
// case-folded); the table terminator is the closing paren of a CREATE TABLE
// body, optionally followed by table options, ending in a semicolon.
const (
	delimiterOpen  = "DELIMITER ;;"
	delimiterClose = "DELIMITER ;"
)

var (
	tableEndPattern = regexp.MustCompile(`^\s*\)\s*(;|\w.*;)`)
	primaryKeyRe    = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	uniqueKeyRe     = regexp.MustCompile(`(?i)\bUNIQUE\s+KEY\b`)
)

// blockHeaders classify what a DELIMITER block wraps. Order matters: the
// first header found names the block.
var blockHeaders = []struct {
	re   *regexp.Regexp
	kind string
}{
	{regexp.MustCompile(`(?im)^\s*CREATE\s+(?:DEFINER\s*=\s*\S+\s+)?PROCEDURE\b`), "Stored procedure"},
	{regexp.MustCompile(`(?im)^\s*CREATE\s+(?:DEFINER\s*=\s*\S+\s+)?FUNCTION\b`), "User-defined function"},
	{regexp.MustCompile(`(?im)^\s*CREATE\s+(?:DEFINER\s*=\s*\S+\s+)?TRIGGER\b`), "Trigger"},
}

// Warning is one compatibility finding. Line is 1-based and always refers to
// the original file, regardless of lines removed from the output.
type Warning struct {
	Line    int
	Message string
}

// Result is the complete outcome of scanning one file. Lines keep their
// original terminators. Modified reports whether a rewrite changes the file:
// it is set in both modes, so a dry run can still say what --apply would do.
type Result struct {
	Path     string
	Lines    []string
	Warnings []Warning
	Modified bool
}

// Content joins the output lines back into file content.
func (r *Result) Content() string {
	return strings.Join(r.Lines, "")
}

// Scanner walks schema files line by line, tracking DELIMITER blocks and
// CREATE TABLE bodies, and feeds everything else through the rule engine.
type Scanner struct {
	engine  *rules.Engine
	rewrite bool
}

// New returns a scanner. With rewrite enabled the output lines carry the
// engine's substitutions; otherwise kept lines stay verbatim (removed lines
// and collapsed blocks disappear from the output in both modes).
func New(engine *rules.Engine, rewrite bool) *Scanner {
	return &Scanner{engine: engine, rewrite: rewrite}
}

// ScanFile reads path fully into memory and scans it. Read errors abort the
// run; nothing is written here — persisting the result is the caller's job.
func (s *Scanner) ScanFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return s.Scan(path, SplitLines(string(data))), nil
}

// SplitLines splits file content into lines, keeping each line's terminator
// so untouched lines round-trip byte for byte.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Scan runs the state machine over lines. The input is never mutated; the
// result is fully materialized before the caller decides what to do with it.
func (s *Scanner) Scan(path string, lines []string) *Result {
	res := &Result{Path: path}

	inDelimiterBlock := false
	var blockLines []string
	blockStart := 0

	for i, line := range lines {
		num := i + 1
		marker := strings.ToUpper(strings.TrimSpace(line))

		if !inDelimiterBlock && marker == delimiterOpen {
			inDelimiterBlock = true
			blockStart = num
			blockLines = []string{line}
			continue
		}

		if inDelimiterBlock {
			blockLines = append(blockLines, line)
			if marker == delimiterClose {
				inDelimiterBlock = false
				s.closeDelimiterBlock(res, blockLines, blockStart)
				blockLines = nil
			}
			continue
		}

		if strings.HasPrefix(marker, "CREATE TABLE") {
			s.checkTableKeys(res, lines, i)
		}

		s.processLine(res, line, num)
	}

	// Unterminated DELIMITER block: there is nothing to classify, so the
	// buffered lines go through the normal per-line path with their
	// original numbers. No line is silently lost.
	if inDelimiterBlock {
		for j, line := range blockLines {
			s.processLine(res, line, blockStart+j)
		}
	}

	return res
}

// closeDelimiterBlock classifies a completed DELIMITER block. A block that
// wraps a procedure, function or trigger collapses to a single marker
// comment and one warning at the block's start line; anything else passes
// through untouched.
func (s *Scanner) closeDelimiterBlock(res *Result, blockLines []string, startLine int) {
	content := strings.Join(blockLines, "")

	for _, h := range blockHeaders {
		if !h.re.MatchString(content) {
			continue
		}
		res.Warnings = append(res.Warnings, Warning{
			Line:    startLine,
			Message: fmt.Sprintf("%s is not supported by TiDB", h.kind),
		})
		res.Lines = append(res.Lines,
			fmt.Sprintf("/* TIDB INCOMPATIBLE: %s REMOVED */\n", strings.ToUpper(h.kind)))
		res.Modified = true
		return
	}

	res.Lines = append(res.Lines, blockLines...)
}

// checkTableKeys looks ahead over a CREATE TABLE body and warns, at the
// CREATE TABLE line, when it declares neither a primary nor a unique key.
// The lookahead is advisory only: every line of the body is still fed
// through the rule engine individually by the main loop.
func (s *Scanner) checkTableKeys(res *Result, lines []string, start int) {
	var block strings.Builder
	block.WriteString(lines[start])
	for j := start + 1; j < len(lines); j++ {
		block.WriteString(lines[j])
		if tableEndPattern.MatchString(lines[j]) {
			break
		}
	}

	content := block.String()
	if primaryKeyRe.MatchString(content) || uniqueKeyRe.MatchString(content) {
		return
	}
	res.Warnings = append(res.Warnings, Warning{
		Line:    start + 1,
		Message: "Table without PRIMARY KEY or UNIQUE KEY is not recommended in TiDB",
	})
}

// processLine runs one standalone line through the rule engine and records
// its fate.
func (s *Scanner) processLine(res *Result, line string, num int) {
	lr := s.engine.Apply(line)

	for _, msg := range lr.Warnings {
		res.Warnings = append(res.Warnings, Warning{Line: num, Message: msg})
	}

	if lr.Drop {
		res.Modified = true
		return
	}
	if lr.Text != line {
		res.Modified = true
	}

	if s.rewrite {
		res.Lines = append(res.Lines, lr.Text)
	} else {
		res.Lines = append(res.Lines, line)
	}
}
