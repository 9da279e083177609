package roblox

import (
	"context"
	"errors"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// MockSource is a mock implementation of PageSource for testing.
type MockSource struct {
	// Functions that can be set by tests to control behavior
	IdentityFn        func(ctx context.Context) (model.Identity, Result)
	TransactionPageFn func(ctx context.Context, userID int64, limit int, cursor string) (model.TransactionPage, Result)

	// Call tracking
	PageCalls     []PageCall
	IdentityCalls int
}

// PageCall records the parameters of a TransactionPage call.
type PageCall struct {
	Cursor string
	UserID int64
	Limit  int
}

// NewMockSource creates a new mock source.
func NewMockSource() *MockSource {
	return &MockSource{
		PageCalls: []PageCall{},
	}
}

// Identity implements PageSource.Identity.
func (m *MockSource) Identity(ctx context.Context) (model.Identity, Result) {
	m.IdentityCalls++

	if m.IdentityFn != nil {
		return m.IdentityFn(ctx)
	}

	// Default behavior: a resolved account
	return model.Identity{ID: 1, Name: "mock"}, OKResult(nil)
}

// TransactionPage implements PageSource.TransactionPage.
func (m *MockSource) TransactionPage(ctx context.Context, userID int64, limit int, cursor string) (model.TransactionPage, Result) {
	m.PageCalls = append(m.PageCalls, PageCall{
		UserID: userID,
		Limit:  limit,
		Cursor: cursor,
	})

	if m.TransactionPageFn != nil {
		return m.TransactionPageFn(ctx, userID, limit, cursor)
	}

	// Default behavior: an empty final page
	return model.TransactionPage{Data: []model.RawTransaction{}}, OKResult(nil)
}

// ValidateCredential implements CredentialChecker through Identity.
func (m *MockSource) ValidateCredential(ctx context.Context) bool {
	_, res := m.Identity(ctx)
	return res.OK()
}

// Reset clears all call tracking.
func (m *MockSource) Reset() {
	m.PageCalls = []PageCall{}
	m.IdentityCalls = 0
}

// OKResult builds an OK Result for stubs.
func OKResult(body []byte) Result {
	if body == nil {
		body = []byte("{}")
	}
	return okResult(200, body)
}

// AbsentResult builds an Absent Result for stubs.
func AbsentResult(status int) Result {
	return absentResult(status, errors.New("stubbed failure"))
}

// Ensure MockSource implements the source interfaces.
var (
	_ PageSource        = (*MockSource)(nil)
	_ CredentialChecker = (*MockSource)(nil)
)
