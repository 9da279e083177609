package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

// QueryDateLayout is the date format accepted in query parameters.
const QueryDateLayout = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD value in loc.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(QueryDateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}

// parseRange reads a range from the named from/to parameters.
func parseRange(c *gin.Context, fromKey, toKey string, loc *time.Location) (analytics.DateRange, error) {
	from, err := parseDate(c.Query(fromKey), loc)
	if err != nil {
		return analytics.DateRange{}, err
	}
	to, err := parseDate(c.Query(toKey), loc)
	if err != nil {
		return analytics.DateRange{}, err
	}
	r := analytics.DateRange{Start: from, End: to}
	if err := r.Validate(); err != nil {
		return analytics.DateRange{}, err
	}
	return r, nil
}

// rangeFromQuery resolves ?preset= or ?from=&to=, falling back to def.
func rangeFromQuery(c *gin.Context, def analytics.DateRange, now time.Time) (analytics.DateRange, error) {
	if preset := c.Query("preset"); preset != "" {
		return analytics.PresetRange(analytics.Preset(preset), now)
	}
	if c.Query("from") == "" && c.Query("to") == "" {
		return def, nil
	}
	return parseRange(c, "from", "to", now.Location())
}

// intQuery reads a non-negative integer parameter.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}

// categoriesQuery parses ?category=Game,Cosmetics.
func categoriesQuery(c *gin.Context) ([]model.Category, error) {
	raw := c.Query("category")
	if raw == "" {
		return nil, nil
	}
	var out []model.Category
	for _, part := range strings.Split(raw, ",") {
		cat, ok := model.ParseCategory(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unknown category %q", part)
		}
		out = append(out, cat)
	}
	return out, nil
}
