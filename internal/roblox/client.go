// Package roblox provides a read-only client for the Roblox account and
// economy endpoints used to pull purchase history.
package roblox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Default endpoints.
const (
	DefaultUsersURL   = "https://users.roblox.com"
	DefaultEconomyURL = "https://economy.roblox.com"
	DefaultTimeout    = 30 * time.Second

	// MaxPageSize is the largest page the transaction endpoint will serve.
	MaxPageSize = 100

	// PurchaseFilter is the transaction type requested from the economy API.
	PurchaseFilter = "Purchase"

	maxBodyBytes = 10 << 20
)

// Config holds client configuration.
type Config struct {
	HTTPClient *http.Client // optional, Timeout is applied when nil
	Credential Credential
	UsersURL   string
	EconomyURL string
	Timeout    time.Duration
	RetryDelay time.Duration
	Retries    int // extra attempts per request; 0 disables retrying
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.Credential.Empty() {
		return fmt.Errorf("roblox session credential is required")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	for _, raw := range []string{c.UsersURL, c.EconomyURL} {
		if raw == "" {
			continue
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", raw, err)
		}
	}
	return nil
}

// Client issues authenticated GET requests.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	credential Credential
	usersURL   string
	economyURL string
	retryDelay time.Duration
	retries    int
}

// NewClient creates a new client with the given configuration.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	usersURL := cfg.UsersURL
	if usersURL == "" {
		usersURL = DefaultUsersURL
	}
	economyURL := cfg.EconomyURL
	if economyURL == "" {
		economyURL = DefaultEconomyURL
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		credential: cfg.Credential,
		usersURL:   strings.TrimRight(usersURL, "/"),
		economyURL: strings.TrimRight(economyURL, "/"),
		retries:    cfg.Retries,
		retryDelay: retryDelay,
	}, nil
}

// statusError is a non-200 response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// retryable reports whether another attempt could plausibly succeed.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	return true
}

// Get performs a GET with the session cookie attached. It never returns an
// error: every failure is reported as an Absent Result.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) Result {
	u, err := url.Parse(rawURL)
	if err != nil {
		return absentResult(0, fmt.Errorf("parse url: %w", err))
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var (
		status int
		body   []byte
	)

	err = retry.Do(
		func() error {
			var attemptErr error
			status, body, attemptErr = c.do(ctx, u.String())
			return attemptErr
		},
		retry.Attempts(uint(c.retries)+1),
		retry.Delay(c.retryDelay),
		retry.Context(ctx),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if int(n) >= c.retries {
				return
			}
			c.logger.Warn("Request failed, retrying",
				"path", u.Path,
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		c.logger.Debug("Request returned no data",
			"path", u.Path,
			"status", status,
			"error", err)
		return absentResult(status, err)
	}

	return okResult(status, body)
}

func (c *Client) do(ctx context.Context, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: c.credential.value()})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Identity resolves the account that owns the credential.
func (c *Client) Identity(ctx context.Context) (model.Identity, Result) {
	res := c.Get(ctx, c.usersURL+"/v1/users/authenticated", nil)

	var id model.Identity
	if !res.Decode(&id) {
		if res.OK() {
			res = res.demote("decode identity")
		}
		return model.Identity{}, res
	}
	if !id.Resolved() {
		return model.Identity{}, res.demote("identity response has no user id")
	}

	return id, res
}

// TransactionPage fetches one page of purchase transactions for userID.
// limit is clamped to [1, MaxPageSize]; an empty cursor requests the first page.
func (c *Client) TransactionPage(ctx context.Context, userID int64, limit int, cursor string) (model.TransactionPage, Result) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("transactionType", PurchaseFilter)
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/v2/users/%d/transactions", c.economyURL, userID)
	res := c.Get(ctx, endpoint, params)

	var page struct {
		Data           *[]model.RawTransaction `json:"data"`
		NextPageCursor *string                 `json:"nextPageCursor"`
	}
	if !res.Decode(&page) {
		if res.OK() {
			res = res.demote("decode transaction page")
		}
		return model.TransactionPage{}, res
	}
	if page.Data == nil {
		return model.TransactionPage{}, res.demote("transaction page has no data field")
	}

	return model.TransactionPage{
		Data:           *page.Data,
		NextPageCursor: page.NextPageCursor,
	}, res
}

// ValidateCredential reports whether the credential resolves to an account.
func (c *Client) ValidateCredential(ctx context.Context) bool {
	_, res := c.Identity(ctx)
	return res.OK()
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
