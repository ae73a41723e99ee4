package ledger

import "strings"

// Resolver assigns entities to records from the account mapping.
type Resolver struct {
	index    map[string][]MappingEntry
	entities []Entity
	newSheet string
}

// NewResolver indexes mapping entries by match key, preserving load order.
func NewResolver(mapping []MappingEntry, entities []Entity, newSheet string) *Resolver {
	idx := make(map[string][]MappingEntry)
	for _, m := range mapping {
		idx[m.Key] = append(idx[m.Key], m)
	}
	return &Resolver{index: idx, entities: entities, newSheet: newSheet}
}

// Candidates returns the mapping entries sharing key.
func (r *Resolver) Candidates(key string) []MappingEntry {
	return r.index[key]
}

// Resolve picks the record's entity among its candidates, first match wins:
// the strong signal, then the reporting-level hint, then an entry from the
// new sheet, then the first remaining candidate in load order.
// RuleNone means the account has no mapping at all.
func (r *Resolver) Resolve(rec Record) (string, Rule) {
	cands := r.index[rec.Key]
	if len(cands) == 0 {
		return "", RuleNone
	}

	if rec.Signal != "" && hasEntity(cands, rec.Signal) {
		return rec.Signal, RuleSignal
	}

	if label := levelHint(rec.Level, r.entities, func(label string) bool {
		return hasEntity(cands, label)
	}); label != "" {
		return label, RuleHint
	}

	for _, c := range cands {
		if c.Sheet == r.newSheet {
			return c.Entity, RuleNewSheet
		}
	}

	return cands[0].Entity, RuleFallback
}

func hasEntity(cands []MappingEntry, entity string) bool {
	for _, c := range cands {
		if c.Entity == entity {
			return true
		}
	}
	return false
}

// levelHint is the first entity, in configuration order, whose code appears in
// level and for which present reports true.
func levelHint(level string, entities []Entity, present func(label string) bool) string {
	level = strings.ToUpper(level)
	if level == "" {
		return ""
	}
	for _, e := range entities {
		label := strings.ToUpper(e.Label)
		if e.Code() != "" && strings.Contains(level, e.Code()) && present(label) {
			return label
		}
	}
	return ""
}
