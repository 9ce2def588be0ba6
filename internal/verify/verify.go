// Package verify re-parses rewritten schema content with the MySQL grammar.
// The rewrite engine works on raw line text, so a substitution that lands in
// an unexpected spot can break statement syntax; this pass catches that and
// reports it as an advisory note. It never fails a run.
package verify

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"vitess.io/vitess/go/vt/sqlparser"
)

var (
	parserOnce      sync.Once
	globalParser    *sqlparser.Parser
	globalParserErr error
)

func getParser() (*sqlparser.Parser, error) {
	parserOnce.Do(func() {
		globalParser, globalParserErr = sqlparser.New(sqlparser.Options{})
	})
	return globalParser, globalParserErr
}

// Statements splits content into statements and returns one note per
// statement that no longer parses as MySQL. Empty pieces, comment-only
// pieces and DELIMITER directives (client-side syntax, not part of the
// server grammar) are skipped.
func Statements(content string) []string {
	p, err := getParser()
	if err != nil {
		return []string{fmt.Sprintf("statement verification unavailable: %v", err)}
	}

	pieces, err := p.SplitStatementToPieces(content)
	if err != nil {
		return []string{fmt.Sprintf("could not split statements for verification: %v", err)}
	}

	var notes []string
	for i, piece := range pieces {
		stmt := strings.TrimSpace(piece)
		if stmt == "" || isCommentOnly(stmt) || hasDelimiterDirective(stmt) {
			continue
		}
		if _, err := p.Parse(stmt); err != nil {
			notes = append(notes, fmt.Sprintf(
				"statement %d does not parse as MySQL after rewrite: %v: %s",
				i+1, err, truncate(stmt, 80)))
		}
	}
	return notes
}

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// isCommentOnly reports whether stmt contains no SQL outside comments.
func isCommentOnly(stmt string) bool {
	stripped := blockCommentRe.ReplaceAllString(stmt, "")
	for _, line := range strings.Split(stripped, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "#") {
			continue
		}
		return false
	}
	return true
}

// hasDelimiterDirective reports whether stmt contains a client DELIMITER
// directive. Blocks kept through the scanner still carry their markers and
// custom terminators, which the server grammar cannot parse.
func hasDelimiterDirective(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(line)), "DELIMITER") {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
