package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// listDelimiters splits a LIST submission into candidate items. Commas,
// semicolons, ampersands, and the conjunctions "and"/"och" all act as
// separators; the set matches what players actually type.
var listDelimiters = regexp.MustCompile(`(?i)[,;]|\s+och\s+|\s+and\s+|\s+&\s+`)

// SplitItems breaks a submission into trimmed, non-empty candidate items
// using the default delimiter set.
func SplitItems(s string) []string {
	return splitWith(listDelimiters, s)
}

func splitWith(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// splitterFor builds the item splitter for a rule. Custom delimiters replace
// the default set entirely; single characters split anywhere, longer entries
// only as standalone words.
func splitterFor(rule Rule) *regexp.Regexp {
	if len(rule.Delimiters) == 0 {
		return listDelimiters
	}
	alts := make([]string, 0, len(rule.Delimiters))
	for _, d := range rule.Delimiters {
		d = strings.TrimSpace(d)
		quoted := regexp.QuoteMeta(d)
		if len([]rune(d)) == 1 {
			alts = append(alts, quoted)
		} else {
			alts = append(alts, `\s+`+quoted+`\s+`)
		}
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(alts, "|"))
	if err != nil {
		return listDelimiters
	}
	return re
}

// EvaluateRule applies a single rule to a submission and returns the
// correctness outcome with a human-readable reason. It never fails:
// malformed input resolves to an incorrect outcome.
func EvaluateRule(rule Rule, answer string) (bool, string) {
	if strings.TrimSpace(answer) == "" {
		return false, "empty answer"
	}
	switch rule.Kind {
	case KindExact, KindAnyOf:
		return matchAnyForm(rule, answer)
	case KindContains:
		return matchContains(rule, answer)
	case KindList:
		return matchList(rule, answer)
	case KindNumeric:
		return matchNumeric(rule, answer)
	default:
		return false, fmt.Sprintf("unknown rule kind %q", rule.Kind)
	}
}

// forms expands one accepted value into its '|'-separated surface forms.
func forms(accepted string) []string {
	return strings.Split(accepted, "|")
}

func matchAnyForm(rule Rule, answer string) (bool, string) {
	for _, accepted := range rule.Accepted {
		for _, form := range forms(accepted) {
			if CloseMatch(answer, form) {
				return true, fmt.Sprintf("matched accepted answer %q", form)
			}
		}
	}
	return false, "does not match any accepted answer"
}

func matchContains(rule Rule, answer string) (bool, string) {
	normalized := Normalize(answer)
	tokens := strings.Fields(normalized)
	for _, accepted := range rule.Accepted {
		for _, form := range forms(accepted) {
			normForm := Normalize(form)
			if strings.Contains(normalized, normForm) {
				return true, fmt.Sprintf("contains key term %q", form)
			}
			for _, token := range tokens {
				if CloseMatch(token, normForm) {
					return true, fmt.Sprintf("contains key term %q", form)
				}
			}
		}
	}
	return false, "missing required terms"
}

// matchList checks an unordered multi-item submission. Every submitted item
// must match a concept, each concept may be consumed at most once, and the
// count of matched concepts must fall within the rule's bounds.
func matchList(rule Rule, answer string) (bool, string) {
	items := splitWith(splitterFor(rule), answer)
	if len(items) == 0 {
		return false, "no items provided"
	}

	consumed := make([]bool, len(rule.Accepted))
	var invalid []string
	for _, item := range items {
		matched := false
		for i, accepted := range rule.Accepted {
			if consumed[i] {
				continue
			}
			for _, form := range forms(accepted) {
				if CloseMatch(item, form) {
					consumed[i] = true
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			// Unmatched items include duplicates of an already-consumed concept.
			invalid = append(invalid, item)
		}
	}
	if len(invalid) > 0 {
		return false, fmt.Sprintf("unrecognized or duplicate item(s): %s", strings.Join(invalid, ", "))
	}

	count := 0
	for _, used := range consumed {
		if used {
			count++
		}
	}
	if rule.MinItems > 0 && count < rule.MinItems {
		return false, fmt.Sprintf("need at least %d items, got %d", rule.MinItems, count)
	}
	if rule.MaxItems > 0 && count > rule.MaxItems {
		return false, fmt.Sprintf("too many items: at most %d, got %d", rule.MaxItems, count)
	}
	return true, fmt.Sprintf("all %d items matched (order independent)", count)
}

// numberPattern finds the first numeric token, admitting a sign, space or
// comma thousands groups, and a decimal part after '.' or ','.
var numberPattern = regexp.MustCompile(`-?\d+(?:[ ,]\d{3})*(?:[.,]\d+)?`)

var thousandsComma = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+$`)

func matchNumeric(rule Rule, answer string) (bool, string) {
	value, ok := extractNumber(answer)
	if !ok {
		return false, "no numeric value found in answer"
	}
	for _, accepted := range rule.Accepted {
		target, err := strconv.ParseFloat(strings.TrimSpace(accepted), 64)
		if err != nil {
			continue
		}
		diff := value - target
		if diff < 0 {
			diff = -diff
		}
		if diff <= rule.Tolerance {
			if diff == 0 {
				return true, fmt.Sprintf("exact numeric match: %v", value)
			}
			return true, fmt.Sprintf("within tolerance: %v (target %v ±%v)", value, target, rule.Tolerance)
		}
	}
	return false, fmt.Sprintf("outside acceptable range: %v (±%v)", value, rule.Tolerance)
}

func extractNumber(s string) (float64, bool) {
	token := numberPattern.FindString(s)
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, " ", "")
	if strings.Contains(token, ",") {
		switch {
		case strings.Contains(token, "."):
			// "1,000.5": commas can only be thousands groups.
			token = strings.ReplaceAll(token, ",", "")
		case thousandsComma.MatchString(token):
			token = strings.ReplaceAll(token, ",", "")
		default:
			// "3,14": decimal comma.
			token = strings.Replace(token, ",", ".", 1)
		}
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
