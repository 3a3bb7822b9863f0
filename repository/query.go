package repository

import (
	"sort"
	"strings"

	"github.com/alfurqan/academy-admin/models"
)

// PageResult is one page of a filtered, sorted view.
type PageResult[T Record] struct {
	Items       []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// PageIDs returns the ids of the page's rows, the scope for select-all.
func (p PageResult[T]) PageIDs() []string {
	ids := make([]string, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.RecordID()
	}
	return ids
}

// ApplyQuery runs the full list pipeline over a snapshot: free-text search
// and field filters (ANDed), a stable type-aware sort, then clamp-and-slice
// pagination. The snapshot is treated as immutable; sorting happens on a
// copy. matches receives the trimmed query.
func ApplyQuery[T Record](
	snapshot []T,
	query string,
	matches func(record T, query string) bool,
	compare func(a, b T) int,
	dir models.SortDirection,
	page models.PageState,
) PageResult[T] {
	query = strings.TrimSpace(query)

	filtered := make([]T, 0, len(snapshot))
	for _, record := range snapshot {
		if matches(record, query) {
			filtered = append(filtered, record)
		}
	}

	if compare != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(filtered[i], filtered[j])
			if dir == models.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}

	page = page.Clamped(len(filtered))
	total := page.TotalPages(len(filtered))

	start := (page.CurrentPage - 1) * page.PageSize
	end := start + page.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult[T]{
		Items:       filtered[start:end],
		TotalItems:  len(filtered),
		TotalPages:  total,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
	}
}
