package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type CreateDiaryRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required"`
	Mood     string   `json:"mood" binding:"max=50"`
	Weather  string   `json:"weather" binding:"max=50"`
	Location string   `json:"location" binding:"max=200"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags"`
}

// UpdateDiaryRequest carries partial updates; nil fields are left untouched.
// A non-nil Tags replaces the whole tag set.
type UpdateDiaryRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Mood     *string   `json:"mood"`
	Weather  *string   `json:"weather"`
	Location *string   `json:"location"`
	IsPublic *bool     `json:"is_public"`
	Tags     *[]string `json:"tags"`
}

// DiaryFilter narrows a diary listing. Zero values mean "not applied".
type DiaryFilter struct {
	Mood          string
	Weather       string
	Location      string
	Tags          []string
	IsPublic      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	AuthorID      *int64
	Ordering      string
	Limit         int
	Offset        int
}

var orderings = map[string]string{
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"updated_at":  "updated_at ASC",
	"-updated_at": "updated_at DESC",
}

// OrderBy returns the SQL ordering clause for the requested field,
// defaulting to newest-first.
func (f DiaryFilter) OrderBy() string {
	if clause, ok := orderings[f.Ordering]; ok {
		return clause
	}
	return "created_at DESC"
}

// DiaryFilterFromQuery parses listing query parameters. Malformed values
// (a timeRange that is not two comma-separated bounds, a non-integer
// user_id) drop the filter instead of failing the request.
func DiaryFilterFromQuery(q url.Values) DiaryFilter {
	f := DiaryFilter{
		Mood:     strings.TrimSpace(q.Get("mood")),
		Weather:  strings.TrimSpace(q.Get("weather")),
		Location: strings.TrimSpace(q.Get("location")),
		Ordering: strings.TrimSpace(q.Get("ordering")),
	}

	for _, tag := range q["tags"] {
		for _, name := range strings.Split(tag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Tags = append(f.Tags, name)
			}
		}
	}

	if raw := q.Get("is_public"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsPublic = &v
		}
	}

	if raw := q.Get("user_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.AuthorID = &id
		}
	}

	f.CreatedAfter, f.CreatedBefore = parseTimeRange(q.Get("timeRange"))

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		f.Offset = offset
	}

	return f
}

// parseTimeRange accepts "start,end" where each bound is a date or an
// RFC3339 timestamp. Either bound may be empty; anything else invalidates
// the whole range.
func parseTimeRange(raw string) (*time.Time, *time.Time) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, nil
	}

	start, okStart := parseBound(strings.TrimSpace(parts[0]), false)
	end, okEnd := parseBound(strings.TrimSpace(parts[1]), true)
	if !okStart || !okEnd {
		return nil, nil
	}

	return start, end
}

func parseBound(raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// a bare end date keeps the whole day inside the inclusive range
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}
	return nil, false
}
