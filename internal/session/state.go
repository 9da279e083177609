package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
)

// Budgets are the user's spending limits. A zero limit means unset.
type Budgets struct {
	Overall   float64 `json:"overall"`
	Monthly   float64 `json:"monthly"`
	Threshold float64 `json:"threshold"`
}

// Validate rejects negative limits and out of range thresholds.
func (b Budgets) Validate() error {
	if b.Overall < 0 || b.Monthly < 0 {
		return fmt.Errorf("%w: budget limits must not be negative", common.ErrInvalidConfig)
	}
	if b.Threshold < analytics.MinThreshold || b.Threshold > analytics.MaxThreshold {
		return fmt.Errorf("%w: budget threshold %.0f must be between %.0f and %.0f",
			common.ErrInvalidConfig, b.Threshold, analytics.MinThreshold, analytics.MaxThreshold)
	}
	return nil
}

// DefaultBudgets has no limits and the default warning threshold.
func DefaultBudgets() Budgets {
	return Budgets{Threshold: analytics.DefaultThreshold}
}

// State is everything one session owns. It is created once per process
// with NewState and returned to its initial shape with Reset. All methods
// are safe for concurrent use.
type State struct {
	createdAt  time.Time
	cache      *Cache
	identity   model.Identity
	id         string
	credential roblox.Credential
	budgets    Budgets
	dateRange  analytics.DateRange
	mu         sync.RWMutex
}

// NewState starts a session for credential.
func NewState(credential roblox.Credential, ttl time.Duration) *State {
	return &State{
		id:         uuid.NewString(),
		createdAt:  time.Now(),
		credential: credential,
		cache:      NewCache(ttl),
		budgets:    DefaultBudgets(),
	}
}

// Reset drops everything learned during the session: the cache, the
// resolved account, the date range and the budgets. The credential is kept
// and a new session id is issued.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.createdAt = time.Now()
	s.identity = model.Identity{}
	s.budgets = DefaultBudgets()
	s.dateRange = analytics.DateRange{}
	s.cache.Clear()
}

// ID is the session identifier.
func (s *State) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// CreatedAt is when the session started or was last reset.
func (s *State) CreatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

// Credential returns the session credential.
func (s *State) Credential() roblox.Credential {
	return s.credential
}

// Cache returns the session cache.
func (s *State) Cache() *Cache {
	return s.cache
}

// Identity returns the resolved account, if any.
func (s *State) Identity() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.identity.Resolved()
}

// SetIdentity records the resolved account.
func (s *State) SetIdentity(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// Budgets returns the current budget settings.
func (s *State) Budgets() Budgets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets
}

// SetBudgets validates and stores b.
func (s *State) SetBudgets(b Budgets) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = b
	return nil
}

// DateRange returns the active date filter.
func (s *State) DateRange() analytics.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dateRange
}

// SetDateRange validates and stores r.
func (s *State) SetDateRange(r analytics.DateRange) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidDateRange, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateRange = r
	return nil
}
