// Package heuristics is the rule-based extraction tier. Rule sets are
// partitioned by document-type label; each rule maps a field name to an
// ordered list of candidate patterns evaluated strictly in declaration order.
// The first pattern that matches wins and the leftmost occurrence in the text
// is taken, so the same input always yields the same output.
package heuristics

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// Pattern is one candidate expression for a field value.
// Exactly one of Expr or Scan is set.
type Pattern struct {
	Expr   *regexp.Regexp
	Group  int            // capture group to take; 0 means the whole match
	Groups []int          // when set, these groups are joined with newlines
	Gate   *regexp.Regexp // when set, the pattern only runs if the gate matches
	Scan   func(text string) (string, bool)
}

func (p Pattern) apply(text string) (string, bool) {
	if p.Gate != nil && !p.Gate.MatchString(text) {
		return "", false
	}
	if p.Scan != nil {
		return p.Scan(text)
	}
	m := p.Expr.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(p.Groups) > 0 {
		parts := make([]string, 0, len(p.Groups))
		for _, g := range p.Groups {
			parts = append(parts, m[g])
		}
		return strings.Join(parts, "\n"), true
	}
	return m[p.Group], true
}

// FieldRule binds a field predicate to its ordered candidate patterns.
// Within a rule set, the first rule whose predicate accepts a field owns it;
// later rules are never consulted for that field.
type FieldRule struct {
	Name     string
	Applies  func(name, desc string) bool
	Patterns []Pattern
}

// RuleSet resolves a single field against document text.
type RuleSet interface {
	Name() string
	Resolve(field schema.Field, text string) (string, bool)
}

type ruleBank struct {
	name  string
	rules []FieldRule
}

func (b *ruleBank) Name() string { return b.name }

func (b *ruleBank) Resolve(field schema.Field, text string) (string, bool) {
	lower := strings.ToLower(field.Name)
	for _, r := range b.rules {
		if !r.Applies(lower, field.Description) {
			continue
		}
		for _, p := range r.Patterns {
			if v, ok := p.apply(text); ok {
				return strings.TrimSpace(v), true
			}
		}
		// The owning rule matched nothing; no backtracking to later rules.
		return "", false
	}
	return "", false
}

func nameContains(subs ...string) func(name, desc string) bool {
	return func(name, _ string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

func nameContainsAll(subs ...string) func(name, desc string) bool {
	return func(name, _ string) bool {
		for _, s := range subs {
			if !strings.Contains(name, s) {
				return false
			}
		}
		return true
	}
}

func and(preds ...func(name, desc string) bool) func(name, desc string) bool {
	return func(name, desc string) bool {
		for _, p := range preds {
			if !p(name, desc) {
				return false
			}
		}
		return true
	}
}

func not(pred func(name, desc string) bool) func(name, desc string) bool {
	return func(name, desc string) bool { return !pred(name, desc) }
}
