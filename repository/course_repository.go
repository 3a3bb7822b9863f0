package repository

import (
	"github.com/alfurqan/academy-admin/models"
)

// InMemoryCourseStore is the canonical course collection.
type InMemoryCourseStore struct {
	*Collection[models.Course]
}

// NewCourseStore creates an empty course store.
func NewCourseStore() *InMemoryCourseStore {
	return &InMemoryCourseStore{Collection: NewCollection[models.Course]()}
}

// ListCourses derives one table page from the store snapshot using the
// workspace's search, filter, sort and page state.
func ListCourses(store CourseStore, w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) PageResult[models.Course] {
	filter := w.Filter.Normalized()
	return ApplyQuery(
		store.Snapshot(),
		w.Search,
		func(c models.Course, q string) bool { return filter.Matches(c) && c.MatchesQuery(q) },
		func(a, b models.Course) int { return models.CompareCourses(a, b, w.SortKey) },
		w.SortDir,
		w.Page,
	)
}
