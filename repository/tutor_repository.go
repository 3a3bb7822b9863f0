package repository

import (
	"github.com/alfurqan/academy-admin/models"
)

// InMemoryTutorStore is the canonical tutor collection.
type InMemoryTutorStore struct {
	*Collection[models.Tutor]
}

// NewTutorStore creates an empty tutor store.
func NewTutorStore() *InMemoryTutorStore {
	return &InMemoryTutorStore{Collection: NewCollection[models.Tutor]()}
}

// ListTutors derives one table page from the store snapshot using the
// workspace's search, filter, sort and page state.
func ListTutors(store TutorStore, w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) PageResult[models.Tutor] {
	filter := w.Filter.Normalized()
	return ApplyQuery(
		store.Snapshot(),
		w.Search,
		func(t models.Tutor, q string) bool { return filter.Matches(t) && t.MatchesQuery(q) },
		func(a, b models.Tutor) int { return models.CompareTutors(a, b, w.SortKey) },
		w.SortDir,
		w.Page,
	)
}
