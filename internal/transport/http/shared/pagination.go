package shared

import (
	"net/http"
	"strings"

	"emsconsole/internal/domain/listing"
)

func ParsePage(r *http.Request) listing.PageRequest {
	return listing.ParsePageRequest(r.URL.Query(), listing.DefaultLimit)
}

// ParseFilter reads the console-side list filter from search, department
// and status query parameters.
func ParseFilter(r *http.Request) listing.Filter {
	q := r.URL.Query()
	return listing.Filter{
		Search:     strings.TrimSpace(q.Get("search")),
		Department: strings.TrimSpace(q.Get("department")),
		Status:     strings.TrimSpace(q.Get("status")),
	}
}
