package repository

import (
	"github.com/alfurqan/academy-admin/models"
)

// InMemoryUserStore is the canonical user collection.
type InMemoryUserStore struct {
	*Collection[models.User]
}

// NewUserStore creates an empty user store.
func NewUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{Collection: NewCollection[models.User]()}
}

// ListUsers derives one table page from the store snapshot using the
// workspace's search, filter, sort and page state.
func ListUsers(store UserStore, w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) PageResult[models.User] {
	filter := w.Filter.Normalized()
	return ApplyQuery(
		store.Snapshot(),
		w.Search,
		func(u models.User, q string) bool { return filter.Matches(u) && u.MatchesQuery(q) },
		func(a, b models.User) int { return models.CompareUsers(a, b, w.SortKey) },
		w.SortDir,
		w.Page,
	)
}
