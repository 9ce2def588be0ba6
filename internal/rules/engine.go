package rules

import "strings"

// LineResult is the outcome of running one line through the rule table.
type LineResult struct {
	Text     string   // cumulative rewritten text; equals the input if nothing fired
	Drop     bool     // line must be removed from the output
	Warnings []string // messages from every rule that fired, in rule order
}

// Engine evaluates the ordered rule table against single lines of schema
// text. An Engine is read-only after construction and safe to share across
// files.
type Engine struct {
	rules      []Rule
	charsets   map[string]bool
	collations map[string]bool
}

// NewEngine builds an engine over the default rule table and compatibility
// sets.
func NewEngine() *Engine {
	return &Engine{
		rules:      DefaultRules,
		charsets:   SupportedCharsets,
		collations: SupportedCollations,
	}
}

// Apply runs every rule against line, in declaration order. Firing decisions
// are made against the original line; substitutions compose on the running
// result. A removal rule short-circuits: rules after it are not evaluated.
func (e *Engine) Apply(line string) LineResult {
	res := LineResult{Text: line}

	for i := range e.rules {
		rule := &e.rules[i]

		switch rule.Action {
		case ActionWarn:
			if rule.Pattern.MatchString(line) {
				res.Warnings = append(res.Warnings, rule.Message)
			}

		case ActionRemoveLine:
			if rule.Pattern.MatchString(line) {
				res.Warnings = append(res.Warnings, rule.Message)
				res.Drop = true
				return res
			}

		case ActionReplace:
			if rule.Pattern.MatchString(line) {
				res.Text = rule.Pattern.ReplaceAllString(res.Text, rule.Replacement)
				res.Warnings = append(res.Warnings, rule.Message)
			}

		case ActionReplaceCharset, ActionReplaceCollation:
			m := rule.Pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			set := e.charsets
			if rule.Action == ActionReplaceCollation {
				set = e.collations
			}
			// Supported value: the rule is considered not to have fired.
			if set[strings.ToLower(m[1])] {
				continue
			}
			res.Text = rule.Pattern.ReplaceAllString(res.Text, rule.Replacement)
			res.Warnings = append(res.Warnings, rule.Message)

		case ActionRemoveKeyword:
			if rule.Pattern.MatchString(line) && rule.Guard.MatchString(line) {
				res.Text = rule.Keyword.ReplaceAllString(res.Text, "")
				res.Warnings = append(res.Warnings, rule.Message)
			}
		}
	}

	return res
}
