package validation

import (
	"fmt"
	"strings"
)

// Kind selects the matching strategy a rule applies to submissions.
type Kind string

const (
	KindExact    Kind = "exact"
	KindContains Kind = "contains"
	KindList     Kind = "list"
	KindNumeric  Kind = "numeric"
	KindAnyOf    Kind = "any_of"
)

// Rule is the immutable per-question matching configuration.
//
// Accepted carries the acceptable answers; its meaning depends on Kind.
// For LIST rules an element may hold several surface forms of one concept
// separated by '|' (e.g. "polstjärnan|north star") so that synonyms are
// never double-counted.
type Rule struct {
	Kind     Kind     `json:"kind"`
	Accepted []string `json:"accepted"`
	// MinItems and MaxItems bound the number of distinct concepts a LIST
	// submission must contain. MaxItems zero means unbounded.
	MinItems int `json:"minItems,omitempty"`
	MaxItems int `json:"maxItems,omitempty"`
	// Delimiters overrides the default item separators for LIST rules.
	// Single-character entries split anywhere; longer entries split only as
	// standalone words, so conjunctions in other languages can be added.
	Delimiters []string `json:"delimiters,omitempty"`
	// Tolerance is the absolute allowed deviation for NUMERIC rules.
	Tolerance float64 `json:"tolerance,omitempty"`
}

// Validate reports whether the rule is well formed. Malformed rules are
// dropped at registry-load time so evaluation never sees them.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindExact, KindContains, KindList, KindNumeric, KindAnyOf:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	if len(r.Accepted) == 0 {
		return fmt.Errorf("rule kind %q has no accepted values", r.Kind)
	}
	// A blank accepted value would match everything under CONTAINS.
	for _, accepted := range r.Accepted {
		for _, form := range strings.Split(accepted, "|") {
			if strings.TrimSpace(form) == "" {
				return fmt.Errorf("blank accepted value in %q", accepted)
			}
		}
	}
	if r.MinItems < 0 || r.MaxItems < 0 {
		return fmt.Errorf("negative item bounds")
	}
	if r.MaxItems > 0 && r.MinItems > r.MaxItems {
		return fmt.Errorf("minItems %d exceeds maxItems %d", r.MinItems, r.MaxItems)
	}
	for _, d := range r.Delimiters {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("empty list delimiter")
		}
	}
	if r.Kind == KindNumeric && r.Tolerance < 0 {
		return fmt.Errorf("negative tolerance")
	}
	return nil
}

// Method records which path produced a verdict.
type Method string

const (
	MethodRuleBased  Method = "rule_based"
	MethodExactMatch Method = "exact_match"
	MethodAIFallback Method = "ai_fallback"
)

// Verdict is the outcome of evaluating one submission.
type Verdict struct {
	Correct    bool   `json:"correct"`
	Method     Method `json:"method"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}
