// Package classification turns raw Roblox transaction records into normalized
// transactions with a category label.
package classification

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Rule maps a transaction type (and optionally an item name) to a category.
// Matching is case-insensitive substring containment.
type Rule struct {
	Name         string
	Category     model.Category
	Otherwise    model.Category // used when the type matches but no name keyword does; empty falls through
	TypeKeywords []string
	NameKeywords []string
	Priority     int // Higher priority rules are checked first
}

// match reports the category the rule assigns, if any.
func (r Rule) match(lowerType, lowerName string) (model.Category, bool) {
	if !containsAny(lowerType, r.TypeKeywords) {
		return "", false
	}
	if len(r.NameKeywords) == 0 {
		return r.Category, true
	}
	if containsAny(lowerName, r.NameKeywords) {
		return r.Category, true
	}
	if r.Otherwise != "" {
		return r.Otherwise, true
	}
	return "", false
}

// Classifier evaluates an ordered rule list; the first matching rule wins.
type Classifier struct {
	rules    []Rule
	fallback model.Category
}

// NewClassifier validates and orders the given rules.
func NewClassifier(rules []Rule) (*Classifier, error) {
	ordered := make([]Rule, 0, len(rules))

	for _, r := range rules {
		if len(r.TypeKeywords) == 0 {
			return nil, fmt.Errorf("rule %q: at least one type keyword is required", r.Name)
		}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("rule %q: invalid category %q", r.Name, r.Category)
		}
		if r.Otherwise != "" && !r.Otherwise.Valid() {
			return nil, fmt.Errorf("rule %q: invalid fallback category %q", r.Name, r.Otherwise)
		}

		r.TypeKeywords = lowerAll(r.TypeKeywords)
		r.NameKeywords = lowerAll(r.NameKeywords)
		ordered = append(ordered, r)
	}

	// Equal priorities keep their declared order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	return &Classifier{
		rules:    ordered,
		fallback: model.CategoryOther,
	}, nil
}

// Categorize returns the category for a transaction type and item name.
// The result is always one of the four known categories.
func (c *Classifier) Categorize(txType, itemName string) model.Category {
	lowerType := strings.ToLower(txType)
	lowerName := strings.ToLower(itemName)

	for _, r := range c.rules {
		if category, ok := r.match(lowerType, lowerName); ok {
			return category
		}
	}

	return c.fallback
}

// RuleCount returns the number of loaded rules.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
