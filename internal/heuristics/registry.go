package heuristics

import (
	"strings"

	"github.com/joseph-ayodele/pdf-extract/internal/entity"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// labeledSet binds a label keyword to its rule set.
type labeledSet struct {
	keyword string
	set     RuleSet
}

// Registry routes extraction to the rule set whose keyword the label
// contains (case-insensitive), falling back to the generic rules for fields
// the label-specific bank leaves unresolved.
type Registry struct {
	labeled []labeledSet
	generic RuleSet
}

// NewRegistry returns the default registry. Keyword checks run in
// declaration order, so a label containing both "oab" and "sistema" routes to
// the OAB rules.
func NewRegistry() *Registry {
	return &Registry{
		labeled: []labeledSet{
			{keyword: "oab", set: NewOABRuleSet()},
			{keyword: "sistema", set: NewSistemaRuleSet()},
		},
		generic: NewGenericRuleSet(),
	}
}

// SetFor selects the label-specific rule set via ordered keyword containment.
func (r *Registry) SetFor(label string) (RuleSet, bool) {
	lower := strings.ToLower(label)
	for _, ls := range r.labeled {
		if strings.Contains(lower, ls.keyword) {
			return ls.set, true
		}
	}
	return nil, false
}

// Resolve runs the heuristic tier over the full schema. Every schema field is
// present in the returned result, holding a value or the nil not-found
// marker. The second return value lists the resolved field names in schema
// order; the orchestrator uses its complement for the fallback tier.
func (r *Registry) Resolve(label, text string, s *schema.Schema) (entity.Result, []string) {
	results := make(entity.Result, s.Len())
	for _, f := range s.Fields() {
		results[f.Name] = nil
	}

	// Prong 1: label-specific rules.
	if labelSet, ok := r.SetFor(label); ok {
		for _, f := range s.Fields() {
			if v, found := labelSet.Resolve(f, text); found {
				results[f.Name] = entity.StrPtr(v)
			}
		}
	}

	// Prong 2: generic rules for fields still unresolved.
	for _, f := range s.Fields() {
		if results[f.Name] != nil {
			continue
		}
		if v, found := r.generic.Resolve(f, text); found {
			results[f.Name] = entity.StrPtr(v)
		}
	}

	var resolved []string
	for _, name := range s.Names() {
		if results[name] != nil {
			resolved = append(resolved, name)
		}
	}
	return results, resolved
}
