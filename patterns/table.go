package patterns

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Class partitions labels into rhetoric and topic labels.
type Class int

const (
	// ClassTopic marks subject-matter labels (immigration, election, ...).
	ClassTopic Class = iota + 1
	// ClassRhetoric marks inflammatory-pattern labels.
	ClassRhetoric
)

// Rhetoric labels. Every other label is a topic label.
const (
	LabelAbsolutist   = "absolutist-claims"
	LabelDehumanizing = "dehumanizing-language"
	LabelViolent      = "violent-rhetoric"
)

// Default topic labels.
const (
	LabelImmigration = "immigration"
	LabelElection    = "election"
)

var rhetoricLabels = map[string]struct{}{
	LabelAbsolutist:   {},
	LabelDehumanizing: {},
	LabelViolent:      {},
}

// ClassOf returns the class a label belongs to.
func ClassOf(label string) Class {
	if _, ok := rhetoricLabels[label]; ok {
		return ClassRhetoric
	}
	return ClassTopic
}

// Rule pairs a regular expression with the label it contributes on a match.
type Rule struct {
	Expr  string `yaml:"expr"`
	Label string `yaml:"label"`
}

type compiledRule struct {
	re    *regexp.Regexp
	label string
	class Class
}

// Table is an ordered, compiled set of rules.
type Table struct {
	rules []compiledRule
}

// DefaultRules returns the built-in rule set in evaluation order.
//
// Go's \b is ASCII-only: a keyword next to a non-ASCII letter ("éalien")
// still sees a word boundary there, so such text can match where a
// Unicode-aware engine would not. Custom rules that need Unicode word
// boundaries should spell them out, e.g. (?:^|[^\pL\pN_])never(?:$|[^\pL\pN_]).
func DefaultRules() []Rule {
	return []Rule{
		{Expr: `\b(always|never|everyone|no one|every single|all of|none of)\b`, Label: LabelAbsolutist},
		{Expr: `\b(animal|vermin|pest|infestation|invasion|flood|alien)\b`, Label: LabelDehumanizing},
		{Expr: `\b(destroy|eliminate|wipe out|fight|attack|war on|enemy)\b`, Label: LabelViolent},
		{Expr: `\b(immigrant|border|deportation|migrant|illegal|alien)\b`, Label: LabelImmigration},
		{Expr: `\b(vote|election|ballot|fraud|rigged|stolen)\b`, Label: LabelElection},
	}
}

// Default returns a table built from DefaultRules.
func Default() *Table {
	t, err := NewTable(DefaultRules())
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable compiles rules into a Table. Matching is case-insensitive.
func NewTable(rules []Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyTable
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		label := strings.TrimSpace(r.Label)
		if label == "" || strings.TrimSpace(r.Expr) == "" {
			return nil, fmt.Errorf("%w: rule %d", ErrInvalidRule, i)
		}
		re, err := regexp.Compile("(?i)" + r.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidRule, i, label, err)
		}
		compiled = append(compiled, compiledRule{re: re, label: label, class: ClassOf(label)})
	}

	return &Table{rules: compiled}, nil
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Labels returns every label in the table, in rule order, without duplicates.
func (t *Table) Labels() []string {
	out := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		if !slices.Contains(out, r.label) {
			out = append(out, r.label)
		}
	}
	return out
}

// Match evaluates every rule against sentence in table order and returns the
// matched topic and rhetoric labels. Both results are duplicate-free and
// sorted; either may be nil.
func (t *Table) Match(sentence string) (categories, rhetoric []string) {
	for _, r := range t.rules {
		if !r.re.MatchString(sentence) {
			continue
		}
		switch r.class {
		case ClassRhetoric:
			rhetoric = appendUnique(rhetoric, r.label)
		default:
			categories = appendUnique(categories, r.label)
		}
	}
	slices.Sort(categories)
	slices.Sort(rhetoric)
	return categories, rhetoric
}

func appendUnique(labels []string, label string) []string {
	if slices.Contains(labels, label) {
		return labels
	}
	return append(labels, label)
}
