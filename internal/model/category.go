package model

// Category is the closed set of labels every transaction is classified into.
type Category string

const (
	// CategoryGame covers game passes, developer products and private servers.
	CategoryGame Category = "Game"
	// CategoryCosmetics covers avatar catalog items such as shirts and hats.
	CategoryCosmetics Category = "Cosmetics"
	// CategoryTrading covers trade-related purchases.
	CategoryTrading Category = "Trading"
	// CategoryOther is the fallback for anything the rules do not recognize.
	CategoryOther Category = "Other"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryGame, CategoryCosmetics, CategoryTrading, CategoryOther}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGame, CategoryCosmetics, CategoryTrading, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory maps a case-sensitive label back to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

func (c Category) String() string {
	return string(c)
}
