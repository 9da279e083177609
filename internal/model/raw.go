package model

// RawTransaction is one record of the Roblox transaction-list endpoint.
// Only the fields we consume are declared; pointers distinguish absent
// values from zero values.
type RawTransaction struct {
	Details  RawDetails  `json:"details"`
	Currency RawCurrency `json:"currency"`
	Created  string      `json:"created"`
}

// RawDetails describes the purchased object.
type RawDetails struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
	ID   *int64  `json:"id"`
}

// RawCurrency holds the signed amount of the transaction.
type RawCurrency struct {
	Amount *float64 `json:"amount"`
	Type   string   `json:"type"`
}

// TransactionPage is a single page of the transaction-list endpoint.
type TransactionPage struct {
	NextPageCursor *string          `json:"nextPageCursor"`
	Data           []RawTransaction `json:"data"`
}

// NextCursor returns the next-page cursor, or "" when pagination has ended.
func (p TransactionPage) NextCursor() string {
	if p.NextPageCursor == nil {
		return ""
	}
	return *p.NextPageCursor
}

// Identity is the authenticated account behind a session credential.
type Identity struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	ID          int64  `json:"id"`
}

// Resolved reports whether the identity carries a usable user id.
func (i Identity) Resolved() bool {
	return i.ID > 0
}
