package listing

import "strings"

const (
	AllDepartments = "All Departments"
	AllStatuses    = "All Status"
)

// Filter narrows a fetched page on the console side. Empty fields and the
// "All ..." sentinels match everything.
type Filter struct {
	Search     string `json:"search,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (f Filter) MatchDepartment(department string) bool {
	return f.Department == "" || f.Department == AllDepartments || f.Department == department
}

func (f Filter) MatchStatus(status string) bool {
	return f.Status == "" || f.Status == AllStatuses || f.Status == status
}

// MatchText reports whether any field contains the search term,
// case-insensitively.
func (f Filter) MatchText(fields ...string) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Apply keeps the items for which keep returns true.
func Apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
