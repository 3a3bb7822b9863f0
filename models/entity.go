package models

// Entity kinds managed by the admin dashboard. Each kind has its own field
// schema but shares the same CRUD + list/filter/sort/paginate pattern.
const (
	EntityTutors  = "tutors"
	EntityCourses = "courses"
	EntityUsers   = "users"
)

func IsValidEntityKind(s string) bool {
	switch s {
	case EntityTutors, EntityCourses, EntityUsers:
		return true
	}
	return false
}
