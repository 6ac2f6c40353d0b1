package listing

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

// PageRequest is a 1-based page of a server-paged list.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// ParsePageRequest reads page and limit from a query string, falling back to
// defaults for missing or malformed values.
func ParsePageRequest(q url.Values, defaultLimit int) PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	return NewPageRequest(page, limit)
}

// Pager is the navigation state of one loaded page. TotalPages is taken from
// the server verbatim.
type Pager struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

func NewPager(req PageRequest, totalPages int) Pager {
	if totalPages < 0 {
		totalPages = 0
	}
	return Pager{
		Page:        req.Page,
		Limit:       req.Limit,
		TotalPages:  totalPages,
		HasPrevious: req.Page > 1,
		HasNext:     req.Page < totalPages,
	}
}

// Page is a list screen's rows plus its pager.
type Page[T any] struct {
	Items []T   `json:"items"`
	Pager Pager `json:"pager"`
}
