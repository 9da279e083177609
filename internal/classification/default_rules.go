package classification

import "github.com/Veraticus/robux-must-flow/internal/model"

// CosmeticKeywords are item-name fragments that mark a catalog asset as a
// wearable cosmetic.
var CosmeticKeywords = []string{"shirt", "pants", "hat", "hair", "face", "gear", "accessory"}

// DefaultRules returns the built-in categorization rules.
//
// Order matters: "asset"/"catalog" must be decided before the private server
// and trade checks, and game passes before everything else.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:         "Game Pass",
			TypeKeywords: []string{"game", "pass"},
			Category:     model.CategoryGame,
			Priority:     60,
		},
		{
			Name:         "Developer Product",
			TypeKeywords: []string{"developer product"},
			Category:     model.CategoryGame,
			Priority:     50,
		},
		{
			Name:         "Catalog Asset",
			TypeKeywords: []string{"asset", "catalog"},
			NameKeywords: CosmeticKeywords,
			Category:     model.CategoryCosmetics,
			Otherwise:    model.CategoryOther,
			Priority:     40,
		},
		{
			Name:         "Private Server",
			TypeKeywords: []string{"private server"},
			Category:     model.CategoryGame,
			Priority:     30,
		},
		{
			Name:         "Trade",
			TypeKeywords: []string{"trade"},
			Category:     model.CategoryTrading,
			Priority:     20,
		},
	}
}

var defaultClassifier = mustClassifier(DefaultRules())

// Default returns the classifier built from DefaultRules.
func Default() *Classifier {
	return defaultClassifier
}

// Categorize classifies with the default rules.
func Categorize(txType, itemName string) model.Category {
	return defaultClassifier.Categorize(txType, itemName)
}

func mustClassifier(rules []Rule) *Classifier {
	c, err := NewClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}
