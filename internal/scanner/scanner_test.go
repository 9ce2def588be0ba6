package scanner

import (
	"strings"
	"testing"

	"github.com/nethalo/tidbcheck/internal/rules"
)

func scanString(t *testing.T, content string, rewrite bool) *Result {
	t.Helper()
	sc := New(rules.NewEngine(), rewrite)
	return sc.Scan("test-schema.sql", SplitLines(content))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single line with terminator", "SELECT 1;\n", []string{"SELECT 1;\n"}},
		{"no trailing newline", "a\nb", []string{"a\n", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a\n", "\n", "b\n"}},
		{"crlf kept inside the line", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.content, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitLines(%q)[%d] = %q, want %q", tt.content, i, got[i], tt.want[i])
				}
			}
			if strings.Join(got, "") != tt.content {
				t.Errorf("SplitLines(%q) does not round-trip", tt.content)
			}
		})
	}
}

func TestScan_DelimiterBlockProcedure(t *testing.T) {
	content := "DELIMITER ;;\n" +
		"CREATE PROCEDURE cleanup_logs()\n" +
		"BEGIN\n" +
		"  DELETE FROM logs WHERE created_at < NOW() - INTERVAL 30 DAY;\n" +
		"END ;;\n" +
		"DELIMITER ;\n"

	for _, rewrite := range []bool{false, true} {
		res := scanString(t, content, rewrite)

		if len(res.Warnings) != 1 {
			t.Fatalf("rewrite=%v: warnings = %v, want exactly 1", rewrite, res.Warnings)
		}
		if res.Warnings[0].Line != 1 {
			t.Errorf("rewrite=%v: warning line = %d, want 1", rewrite, res.Warnings[0].Line)
		}
		if res.Warnings[0].Message != "Stored procedure is not supported by TiDB" {
			t.Errorf("rewrite=%v: warning message = %q", rewrite, res.Warnings[0].Message)
		}

		want := "/* TIDB INCOMPATIBLE: STORED PROCEDURE REMOVED */\n"
		if res.Content() != want {
			t.Errorf("rewrite=%v: content = %q, want %q", rewrite, res.Content(), want)
		}
		if !res.Modified {
			t.Errorf("rewrite=%v: Modified = false, want true", rewrite)
		}
	}
}

func TestScan_DelimiterBlockKinds(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKind string
	}{
		{"function", "CREATE FUNCTION f_total(a INT) RETURNS INT", "User-defined function"},
		{"trigger", "CREATE TRIGGER trg_audit BEFORE INSERT ON t1 FOR EACH ROW", "Trigger"},
		{"definer procedure", "CREATE DEFINER=`root`@`localhost` PROCEDURE p1()", "Stored procedure"},
		{"definer trigger", "CREATE DEFINER=`app`@`%` TRIGGER trg2 AFTER UPDATE ON t2 FOR EACH ROW", "Trigger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "DELIMITER ;;\n" + tt.header + "\nBEGIN\nEND ;;\nDELIMITER ;\n"
			res := scanString(t, content, true)

			if len(res.Warnings) != 1 {
				t.Fatalf("warnings = %v, want exactly 1", res.Warnings)
			}
			wantMsg := tt.wantKind + " is not supported by TiDB"
			if res.Warnings[0].Message != wantMsg {
				t.Errorf("warning = %q, want %q", res.Warnings[0].Message, wantMsg)
			}
			wantMarker := "/* TIDB INCOMPATIBLE: " + strings.ToUpper(tt.wantKind) + " REMOVED */\n"
			if res.Content() != wantMarker {
				t.Errorf("content = %q, want %q", res.Content(), wantMarker)
			}
		})
	}
}

func TestScan_DelimiterBlockWithoutRoutine(t *testing.T) {
	// A block that wraps no routine passes through untouched.
	content := "DELIMITER ;;\nSELECT 1;;\nDELIMITER ;\n"
	res := scanString(t, content, true)

	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}
	if res.Content() != content {
		t.Errorf("content = %q, want input unchanged", res.Content())
	}
	if res.Modified {
		t.Error("Modified = true, want false")
	}
}

func TestScan_UnterminatedDelimiterBlock(t *testing.T) {
	// Open marker with no close: the buffered lines fall back to the normal
	// per-line path with their original line numbers.
	content := "DELIMITER ;;\nCREATE PROCEDURE p1()\nBEGIN\n"
	res := scanString(t, content, true)

	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly 1", res.Warnings)
	}
	if res.Warnings[0].Line != 2 {
		t.Errorf("warning line = %d, want 2", res.Warnings[0].Line)
	}

	// The CREATE PROCEDURE line is removed per-line; the markers around it
	// survive. Nothing is silently lost.
	want := "DELIMITER ;;\nBEGIN\n"
	if res.Content() != want {
		t.Errorf("content = %q, want %q", res.Content(), want)
	}
}

func TestScan_TableWithoutKey(t *testing.T) {
	content := "CREATE TABLE t1 (\n  id INT\n);\n"
	res := scanString(t, content, false)

	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly 1", res.Warnings)
	}
	w := res.Warnings[0]
	if w.Line != 1 {
		t.Errorf("warning line = %d, want 1 (the CREATE TABLE line)", w.Line)
	}
	if w.Message != "Table without PRIMARY KEY or UNIQUE KEY is not recommended in TiDB" {
		t.Errorf("warning message = %q", w.Message)
	}
	if res.Content() != content {
		t.Errorf("content = %q, want input unchanged", res.Content())
	}
}

func TestScan_TableWithKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"primary key", "  PRIMARY KEY (`id`)\n"},
		{"unique key", "  UNIQUE KEY `uq_name` (`name`)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "CREATE TABLE t1 (\n  `id` bigint NOT NULL,\n  `name` varchar(50),\n" +
				tt.key + ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n"
			res := scanString(t, content, false)
			if len(res.Warnings) != 0 {
				t.Errorf("warnings = %v, want none", res.Warnings)
			}
		})
	}
}

func TestScan_TableLookaheadDoesNotSkipLines(t *testing.T) {
	// The table-block lookahead is advisory: lines inside the body still go
	// through the rule engine one by one.
	content := "CREATE TABLE t1 (\n" +
		"  `id` bigint NOT NULL,\n" +
		"  `body` text,\n" +
		"  FULLTEXT KEY `ft1` (`body`),\n" +
		"  PRIMARY KEY (`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8;\n"

	res := scanString(t, content, true)

	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 (FULLTEXT + charset)", res.Warnings)
	}
	if res.Warnings[0].Line != 4 {
		t.Errorf("first warning line = %d, want 4", res.Warnings[0].Line)
	}
	if res.Warnings[1].Line != 6 {
		t.Errorf("second warning line = %d, want 6", res.Warnings[1].Line)
	}

	out := res.Content()
	if strings.Contains(out, "FULLTEXT") {
		t.Error("FULLTEXT line survived the rewrite")
	}
	if !strings.Contains(out, "CHARSET=utf8mb4") {
		t.Errorf("charset not rewritten: %q", out)
	}
}

func TestScan_UnterminatedTableBlock(t *testing.T) {
	// The closing pattern never appears; the missing-key check still runs on
	// whatever accumulated, and every line is still rule-checked.
	content := "CREATE TABLE broken (\n  `id` int NOT NULL AUTO_INCREMENT,\n"
	res := scanString(t, content, false)

	var haveKeyWarning, haveAutoIncWarning bool
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, "PRIMARY KEY or UNIQUE KEY") {
			haveKeyWarning = true
		}
		if strings.Contains(w.Message, "AUTO_INCREMENT") {
			haveAutoIncWarning = true
		}
	}
	if !haveKeyWarning {
		t.Error("missing-key warning not emitted for unterminated table block")
	}
	if !haveAutoIncWarning {
		t.Error("per-line rules did not run inside unterminated table block")
	}
	if res.Content() != content {
		t.Errorf("content = %q, want input unchanged", res.Content())
	}
}

func TestScan_NonRewriteKeepsOriginalText(t *testing.T) {
	content := ") ENGINE=InnoDB DEFAULT CHARSET=utf8 ROW_FORMAT=COMPRESSED;\n"
	res := scanString(t, content, false)

	if res.Content() != content {
		t.Errorf("dry run altered kept line: %q", res.Content())
	}
	if len(res.Warnings) != 2 {
		t.Errorf("warnings = %v, want 2", res.Warnings)
	}
	if !res.Modified {
		t.Error("Modified = false, want true (a rewrite would change the file)")
	}
}

func TestScan_WarningsUseOriginalLineNumbers(t *testing.T) {
	// The FULLTEXT line before the charset line is removed; the charset
	// warning must still point at its original physical line.
	content := "FULLTEXT INDEX ft1 (col1);\n" +
		"ALTER TABLE t1 CONVERT TO CHARACTER SET ujis;\n"
	res := scanString(t, content, true)

	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", res.Warnings)
	}
	if res.Warnings[0].Line != 1 || res.Warnings[1].Line != 2 {
		t.Errorf("warning lines = %d, %d, want 1, 2", res.Warnings[0].Line, res.Warnings[1].Line)
	}
	if got := len(res.Lines); got != 1 {
		t.Errorf("output line count = %d, want 1 (FULLTEXT line dropped)", got)
	}
}

func TestScan_RewriteIsIdempotent(t *testing.T) {
	content := "CREATE TABLE t1 (\n" +
		"  `id` bigint NOT NULL,\n" +
		"  `name` varchar(50) CHARACTER SET utf8 COLLATE utf8_general_ci,\n" +
		"  `body` text,\n" +
		"  FULLTEXT KEY `ft1` (`body`),\n" +
		"  KEY `idx_name` (`name` DESC),\n" +
		"  PRIMARY KEY (`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8 ROW_FORMAT=COMPACT;\n" +
		"DELIMITER ;;\n" +
		"CREATE TRIGGER trg1 BEFORE INSERT ON t1 FOR EACH ROW\n" +
		"BEGIN\n" +
		"END ;;\n" +
		"DELIMITER ;\n"

	first := scanString(t, content, true)
	if len(first.Warnings) == 0 {
		t.Fatal("first pass produced no warnings; bad test fixture")
	}
	if !first.Modified {
		t.Fatal("first pass did not modify; bad test fixture")
	}

	second := scanString(t, first.Content(), true)
	if len(second.Warnings) != 0 {
		t.Errorf("second pass warnings = %v, want none", second.Warnings)
	}
	if second.Content() != first.Content() {
		t.Errorf("second pass output differs:\nfirst:  %q\nsecond: %q", first.Content(), second.Content())
	}
	if second.Modified {
		t.Error("second pass Modified = true, want false")
	}
}
