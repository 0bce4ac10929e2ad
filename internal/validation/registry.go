package validation

import (
	"encoding/json"
	"log"
	"sync/atomic"
)

// Registry maps question day numbers to their validation rule. Lookups are
// lock-free reads of an immutable snapshot; updates swap the whole map so
// concurrent readers never observe a partially-built rule.
type Registry struct {
	snapshot atomic.Pointer[map[int]Rule]
}

// NewRegistry builds a registry from the given rules, dropping any rule that
// fails validation. A dropped rule routes its question to the fallback path
// instead of crashing evaluation.
func NewRegistry(rules map[int]Rule) *Registry {
	r := &Registry{}
	r.Replace(rules)
	return r
}

// Lookup returns the rule for a day, if one is configured.
func (r *Registry) Lookup(day int) (Rule, bool) {
	snapshot := r.snapshot.Load()
	if snapshot == nil {
		return Rule{}, false
	}
	rule, ok := (*snapshot)[day]
	return rule, ok
}

// Replace atomically installs a new rule set, validating each entry.
func (r *Registry) Replace(rules map[int]Rule) {
	snapshot := make(map[int]Rule, len(rules))
	for day, rule := range rules {
		if err := rule.Validate(); err != nil {
			log.Printf("validation: dropping rule for day %d: %v", day, err)
			continue
		}
		snapshot[day] = rule
	}
	r.snapshot.Store(&snapshot)
}

// Extend merges additional rules over the current snapshot. Used when
// user-authored question sets carry their own persisted rules.
func (r *Registry) Extend(rules map[int]Rule) {
	merged := make(map[int]Rule)
	if snapshot := r.snapshot.Load(); snapshot != nil {
		for day, rule := range *snapshot {
			merged[day] = rule
		}
	}
	for day, rule := range rules {
		merged[day] = rule
	}
	r.Replace(merged)
}

// ParseRule decodes a persisted rule description. Malformed records fail
// closed: the caller treats the question as having no rule.
func ParseRule(raw []byte) (Rule, error) {
	var rule Rule
	if err := json.Unmarshal(raw, &rule); err != nil {
		return Rule{}, err
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}
