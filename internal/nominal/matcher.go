// Package nominal assigns accounting nominal codes to financial line items.
package nominal

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"garage/internal/domain"
)

// lower folds text for matching. Casers are stateful, so each call builds its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Assign returns the nominal code id of the highest-priority rule that
// matches the description for the given item type and entity. Rules with the
// same priority keep their input order. ok is false when no rule matches,
// which callers surface as "Unassigned".
func Assign(description string, itemType domain.ItemType, entityID string, rules []domain.NominalCodeRule) (nominalCodeID string, ok bool) {
	candidates := make([]domain.NominalCodeRule, 0, len(rules))
	for _, r := range rules {
		if (r.EntityID == domain.AllEntities || r.EntityID == entityID) && r.ItemType == itemType {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	desc := lower(description)
	for _, r := range candidates {
		if Matches(desc, r) {
			return r.NominalCodeID, true
		}
	}
	return "", false
}

// Matches reports whether a lower-cased description satisfies the rule's
// keyword and exclusion lists.
func Matches(lowerDescription string, rule domain.NominalCodeRule) bool {
	keywords := SplitKeywords(rule.Keywords)
	matched := len(keywords) == 0
	for _, kw := range keywords {
		if strings.Contains(lowerDescription, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, ex := range SplitKeywords(rule.ExcludeKeywords) {
		if strings.Contains(lowerDescription, ex) {
			return false
		}
	}
	return true
}

// SplitKeywords splits a comma separated keyword list into trimmed,
// lower-cased, non-empty entries.
func SplitKeywords(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, lower(p))
	}
	return out
}
