package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/session"
)

// SessionResponse describes the session and its cache.
type SessionResponse struct {
	CreatedAt time.Time         `json:"created_at"`
	Identity  *IdentityResponse `json:"identity,omitempty"`
	FetchedAt *time.Time        `json:"fetched_at,omitempty"`
	ID        string            `json:"id"`
	CacheAge  string            `json:"cache_age"`
	Stop      string            `json:"stop,omitempty"`
	DateRange DateRangeResponse `json:"date_range"`
	Budgets   session.Budgets   `json:"budgets"`
	ExpiresIn int64             `json:"expires_in_seconds"`
	Pages     int               `json:"pages"`
	Cached    bool              `json:"cached"`
	Fresh     bool              `json:"fresh"`
	Partial   bool              `json:"partial"`
}

// IdentityResponse is the resolved account.
type IdentityResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	ID          int64  `json:"id"`
}

// DateRangeResponse is an active date filter.
type DateRangeResponse struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
	Label string     `json:"label"`
}

// TransactionsResponse is a filtered, newest-first transaction list.
type TransactionsResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Count        int                 `json:"count"`
	Total        int                 `json:"total"`
}

// BudgetResponse reports both budgets. A nil status means that budget is unset.
type BudgetResponse struct {
	Overall   *analytics.BudgetStatus `json:"overall,omitempty"`
	Monthly   *analytics.BudgetStatus `json:"monthly,omitempty"`
	Threshold float64                 `json:"threshold"`
}

// BudgetRequest updates budgets. Omitted fields keep their current value.
type BudgetRequest struct {
	Overall   *float64 `json:"overall"`
	Monthly   *float64 `json:"monthly"`
	Threshold *float64 `json:"threshold"`
}

// ForecastResponse pairs the forecast with the history it was fitted on.
type ForecastResponse struct {
	analytics.ForecastResult
	History []analytics.PeriodTotal `json:"history"`
}

// RefreshResponse describes a completed fetch.
type RefreshResponse struct {
	FetchedAt    time.Time `json:"fetched_at"`
	Stop         string    `json:"stop"`
	Message      string    `json:"message"`
	Transactions int       `json:"transactions"`
	Pages        int       `json:"pages"`
	Partial      bool      `json:"partial"`
}

func dateRangeResponse(r analytics.DateRange) DateRangeResponse {
	out := DateRangeResponse{Label: r.Label()}
	if !r.Start.IsZero() {
		out.Start = &r.Start
	}
	if !r.End.IsZero() {
		out.End = &r.End
	}
	return out
}

// load returns the session's set and the requested date range. Loads are
// shared between requests, so one client going away does not cancel them.
// On failure the response has already been written.
func (s *Server) load(c *gin.Context) (session.Snapshot, analytics.DateRange, bool) {
	now := s.session.Now()
	r, err := rangeFromQuery(c, s.session.State().DateRange(), now)
	if err != nil {
		badRequest(c, err.Error())
		return session.Snapshot{}, analytics.DateRange{}, false
	}

	snap, err := s.session.Load(context.WithoutCancel(c.Request.Context()), false)
	if err != nil {
		s.logger.Warn("Failed to load purchase history", "error", err)
		loadError(c, err)
		return session.Snapshot{}, analytics.DateRange{}, false
	}
	return snap, r, true
}

// transactions loads the session's set and applies the requested date range.
func (s *Server) transactions(c *gin.Context) ([]model.Transaction, bool) {
	snap, r, ok := s.load(c)
	if !ok {
		return nil, false
	}
	return analytics.Filter(snap.Transactions, r), true
}

func (s *Server) getSession(c *gin.Context) {
	state := s.session.State()
	cache := state.Cache()
	now := s.session.Now()

	resp := SessionResponse{
		ID:        state.ID(),
		CreatedAt: state.CreatedAt(),
		CacheAge:  cache.AgeText(now),
		Fresh:     cache.Valid(now),
		ExpiresIn: int64(cache.ExpiresIn(now) / time.Second),
		Budgets:   state.Budgets(),
		DateRange: dateRangeResponse(state.DateRange()),
	}
	if entry, ok := cache.Entry(); ok {
		resp.Cached = true
		resp.FetchedAt = &entry.FetchedAt
		resp.Stop = string(entry.Stop)
		resp.Pages = entry.Pages
		resp.Partial = entry.Partial()
	}
	if id, ok := state.Identity(); ok {
		resp.Identity = &IdentityResponse{ID: id.ID, Name: id.Name, DisplayName: id.DisplayName}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSummary(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Summarize(txs))
}

func (s *Server) getTransactions(c *gin.Context) {
	cats, err := categoriesQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	txs, ok := s.transactions(c)
	if !ok {
		return
	}

	rows := analytics.SortByDateDesc(analytics.FilterCategories(txs, cats...))
	total := len(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	c.JSON(http.StatusOK, TransactionsResponse{Transactions: rows, Count: len(rows), Total: total})
}

func (s *Server) getCategories(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.ByCategory(txs))
}

func (s *Server) getCategoryTypes(c *gin.Context) {
	cat, valid := model.ParseCategory(c.Param("category"))
	if !valid {
		abortWithError(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
		return
	}
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.ByType(txs, cat))
}

func (s *Server) getMonthly(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Monthly(txs))
}

func (s *Server) getWeekly(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Weekly(txs))
}

func (s *Server) getCumulative(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Cumulative(txs))
}

func (s *Server) getTopItems(c *gin.Context) {
	limit, err := intQuery(c, "limit", 10)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	txs, ok := s.transactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.TopItems(txs, limit))
}

func (s *Server) getBudget(c *gin.Context) {
	snap, r, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.budgetStatus(analytics.Filter(snap.Transactions, r), snap.Transactions))
}

// budgetStatus measures the overall budget against the filtered set and the
// monthly budget against the current calendar month of the whole history.
func (s *Server) budgetStatus(filtered, all []model.Transaction) BudgetResponse {
	b := s.session.State().Budgets()
	resp := BudgetResponse{Threshold: b.Threshold}

	if b.Overall > 0 {
		st := analytics.Budget(analytics.Total(filtered), b.Overall, b.Threshold)
		resp.Overall = &st
	}
	if b.Monthly > 0 {
		st := analytics.Budget(analytics.CurrentMonthSpend(all, s.session.Now()), b.Monthly, b.Threshold)
		resp.Monthly = &st
	}
	return resp
}

func (s *Server) putBudget(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid budget body: "+err.Error())
		return
	}

	state := s.session.State()
	b := state.Budgets()
	if req.Overall != nil {
		b.Overall = *req.Overall
	}
	if req.Monthly != nil {
		b.Monthly = *req.Monthly
	}
	if req.Threshold != nil {
		b.Threshold = *req.Threshold
	}

	if err := state.SetBudgets(b); err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, b)
}

func (s *Server) getForecast(c *gin.Context) {
	months, err := intQuery(c, "months", s.cfg.ForecastMonths)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	txs, ok := s.transactions(c)
	if !ok {
		return
	}

	history := analytics.Monthly(txs)
	c.JSON(http.StatusOK, ForecastResponse{
		ForecastResult: analytics.Forecast(history, months),
		History:        history,
	})
}

func (s *Server) getCompare(c *gin.Context) {
	txs, ok := s.transactions(c)
	if !ok {
		return
	}

	var cmp analytics.Comparison
	switch mode := c.DefaultQuery("mode", "month"); mode {
	case "month", "week":
		available := analytics.AvailableMonths(txs)
		compare := analytics.CompareMonths
		if mode == "week" {
			available = analytics.AvailableWeeks(txs)
			compare = analytics.CompareWeeks
		}
		first, second := c.Query("first"), c.Query("second")
		if first == "" || second == "" {
			var found bool
			first, second, found = analytics.LatestPair(available)
			if !found {
				abortWithError(c, http.StatusUnprocessableEntity, ErrCodeNoData,
					"need transactions from at least two different "+mode+"s")
				return
			}
		}
		cmp = compare(txs, first, second)
	case "custom":
		loc := s.session.Now().Location()
		r1, err := parseRange(c, "from1", "to1", loc)
		if err != nil {
			badRequest(c, "first period: "+err.Error())
			return
		}
		r2, err := parseRange(c, "from2", "to2", loc)
		if err != nil {
			badRequest(c, "second period: "+err.Error())
			return
		}
		cmp = analytics.CompareRanges(txs, r1, r2)
	default:
		badRequest(c, "mode must be month, week or custom")
		return
	}

	c.JSON(http.StatusOK, cmp)
}

func (s *Server) postRefresh(c *gin.Context) {
	snap, err := s.session.Refresh(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		s.logger.Warn("Refresh failed", "error", err)
		loadError(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Transactions: len(snap.Transactions),
		FetchedAt:    snap.FetchedAt,
		Stop:         string(snap.Stop),
		Message:      snap.Stop.Describe(),
		Pages:        snap.Pages,
		Partial:      snap.Partial(),
	})
}
