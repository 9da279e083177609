package roblox

import (
	"context"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// PageSource defines the two remote calls pagination depends on.
// This interface allows for easy mocking in tests.
type PageSource interface {
	Identity(ctx context.Context) (model.Identity, Result)
	TransactionPage(ctx context.Context, userID int64, limit int, cursor string) (model.TransactionPage, Result)
}

// CredentialChecker reports whether the session credential still resolves
// to an account.
type CredentialChecker interface {
	ValidateCredential(ctx context.Context) bool
}

var (
	_ PageSource        = (*Client)(nil)
	_ CredentialChecker = (*Client)(nil)
)
