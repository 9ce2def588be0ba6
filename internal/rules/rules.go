package rules

import "regexp"

// Action says what firing a rule does to the line under inspection.
type Action int

const (
	// ActionWarn reports the construct and leaves the line alone.
	ActionWarn Action = iota
	// ActionRemoveLine drops the whole line and stops rule evaluation for it.
	ActionRemoveLine
	// ActionRemoveKeyword strips a keyword token, but only when the rule's
	// guard also matches the line.
	ActionRemoveKeyword
	// ActionReplace substitutes every pattern match with fixed text.
	ActionReplace
	// ActionReplaceCharset substitutes only when the captured character set
	// is not in SupportedCharsets.
	ActionReplaceCharset
	// ActionReplaceCollation substitutes only when the captured collation
	// is not in SupportedCollations.
	ActionReplaceCollation
)

// Rule is one immutable compatibility check. Rules are evaluated in the
// order they appear in DefaultRules.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Action      Action
	Replacement string         // ActionReplace and the conditional variants
	Guard       *regexp.Regexp // ActionRemoveKeyword: context required to fire
	Keyword     *regexp.Regexp // ActionRemoveKeyword: the token to strip
	Message     string
}

// SupportedCharsets are the character sets TiDB accepts without conversion.
var SupportedCharsets = map[string]bool{
	"utf8mb4": true,
	"latin1":  true,
	"ascii":   true,
	"binary":  true,
	"gbk":     true,
}

// SupportedCollations are the collations TiDB accepts without conversion.
var SupportedCollations = map[string]bool{
	"utf8mb4_bin":        true,
	"utf8mb4_general_ci": true,
	"utf8mb4_unicode_ci": true,
	"utf8mb4_0900_ai_ci": true,
	"utf8mb4_0900_bin":   true,
	"ascii_bin":          true,
	"latin1_bin":         true,
	"binary":             true,
	"gbk_bin":            true,
	"gbk_chinese_ci":     true,
}

// DefaultRules is the ordered rule table. Order matters: a removal rule
// short-circuits everything after it for that line, and replacements compose
// top to bottom.
var DefaultRules = []Rule{
	{
		Name:    "stored-procedures",
		Pattern: regexp.MustCompile(`(?i)^\s*CREATE\s+PROCEDURE\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support stored procedures. Removing procedure definition.",
	},
	{
		Name:    "triggers",
		Pattern: regexp.MustCompile(`(?i)^\s*CREATE\s+TRIGGER\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support triggers. Removing trigger definition.",
	},
	{
		Name:    "events",
		Pattern: regexp.MustCompile(`(?i)^\s*CREATE\s+EVENT\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support events. Removing event definition.",
	},
	{
		Name:    "user-defined-functions",
		Pattern: regexp.MustCompile(`(?i)^\s*CREATE\s+FUNCTION\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support user-defined functions. Removing function definition.",
	},
	{
		Name:    "fulltext-indexes",
		Pattern: regexp.MustCompile(`(?i)\bFULLTEXT\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support FULLTEXT indexes. Removing index definition.",
	},
	{
		Name:    "spatial-indexes",
		Pattern: regexp.MustCompile(`(?i)\bSPATIAL\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support SPATIAL indexes. Removing index definition.",
	},
	{
		Name:        "character-set",
		Pattern:     regexp.MustCompile(`(?i)CHARACTER\s+SET\s+(\w+)`),
		Action:      ActionReplaceCharset,
		Replacement: "CHARACTER SET utf8mb4",
		Message:     "Unsupported character set. Replacing with utf8mb4.",
	},
	{
		Name:        "charset-option",
		Pattern:     regexp.MustCompile(`(?i)CHARSET\s*=\s*(\w+)`),
		Action:      ActionReplaceCharset,
		Replacement: "CHARSET=utf8mb4",
		Message:     "Unsupported CHARSET option. Replacing with utf8mb4.",
	},
	{
		Name:        "collation",
		Pattern:     regexp.MustCompile(`(?i)COLLATE\s+(\w+)`),
		Action:      ActionReplaceCollation,
		Replacement: "COLLATE utf8mb4_bin",
		Message:     "Unsupported collation. Replacing with utf8mb4_bin.",
	},
	{
		Name:        "collation-option",
		Pattern:     regexp.MustCompile(`(?i)COLLATE\s*=\s*(\w+)`),
		Action:      ActionReplaceCollation,
		Replacement: "COLLATE = utf8mb4_bin",
		Message:     "Unsupported COLLATE option. Replacing with utf8mb4_bin.",
	},
	{
		Name:    "column-level-privileges",
		Pattern: regexp.MustCompile(`(?i)GRANT\s+.*?\([^)]+\)`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support column-level privileges. Removing grant statement.",
	},
	{
		Name:    "tablespace-creation",
		Pattern: regexp.MustCompile(`(?i)CREATE\s+TABLESPACE\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support TABLESPACE. Removing tablespace definition.",
	},
	{
		Name:    "descending-indexes",
		Pattern: regexp.MustCompile(`(?i)\bDESC\b`),
		Action:  ActionRemoveKeyword,
		Guard:   regexp.MustCompile(`(?i)\b(INDEX|KEY)\b`),
		Keyword: regexp.MustCompile(`(?i)\s+DESC\b`),
		Message: "TiDB ignores DESC in indexes. Removing DESC keyword.",
	},
	{
		Name:    "subpartitioning",
		Pattern: regexp.MustCompile(`(?i)\bSUBPARTITION\b`),
		Action:  ActionRemoveLine,
		Message: "TiDB does not support subpartitioning. Removing subpartition definition.",
	},
	{
		Name:        "subpartition-count",
		Pattern:     regexp.MustCompile(`(?i)\bSUBPARTITIONS\s+\d+`),
		Action:      ActionReplace,
		Replacement: "",
		Message:     "TiDB does not support subpartitions. Removing SUBPARTITIONS clause.",
	},
	{
		Name:    "auto-increment-behavior",
		Pattern: regexp.MustCompile(`(?i)AUTO_INCREMENT[^=]`),
		Action:  ActionWarn,
		Message: "Note: TiDB AUTO_INCREMENT is monotonic per instance but not continuous cluster-wide. For global monotonicity, add AUTO_ID_CACHE=1.",
	},
	{
		Name:    "auto-increment-narrow-type",
		Pattern: regexp.MustCompile(`(?i)\s(TINYINT|SMALLINT|MEDIUMINT|INT)\b.*\bAUTO_INCREMENT[^=]`),
		Action:  ActionWarn,
		Message: "Note: the data type of this AUTO_INCREMENT column is not BIGINT, which poses a risk of overflow.",
	},
	{
		Name:        "row-format",
		Pattern:     regexp.MustCompile(`(?i)\bROW_FORMAT\s*=\s*\w+`),
		Action:      ActionReplace,
		Replacement: "",
		Message:     "TiDB does not support ROW_FORMAT. Removing the option.",
	},
}
