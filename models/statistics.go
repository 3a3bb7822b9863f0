package models

// Aggregate statistics come from two deliberately separate universes. The
// backend's statistics endpoints compute over its full dataset
// (ServerAggregateStats); the gateway also derives counts from whatever
// collection it has loaded (ClientDerivedStats). The two are not required
// to agree and are never merged.

// ServerAggregateStats is the dashboard summary returned by
// GET /statistics/dashboard.
type ServerAggregateStats struct {
	TotalTutors   int     `json:"total_tutors"`
	TotalCourses  int     `json:"total_courses"`
	TotalUsers    int     `json:"total_users"`
	ActiveCourses int     `json:"active_courses"`
	AverageRating float64 `json:"average_rating"`
	NewThisMonth  int     `json:"new_this_month"`
}

// ServerEntityStats is the per-entity summary returned by
// GET /statistics/entity/:entity.
type ServerEntityStats struct {
	Entity        string         `json:"entity"`
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status,omitempty"`
	AverageRating float64        `json:"average_rating,omitempty"`
}

// ClientDerivedStats is computed from the loaded in-memory collection,
// independent of any active filters.
type ClientDerivedStats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	AverageRating float64        `json:"average_rating,omitempty"`
	TotalStudents int            `json:"total_students,omitempty"`
}

// DeriveTutorStats aggregates the loaded tutor collection.
func DeriveTutorStats(tutors []Tutor) ClientDerivedStats {
	stats := ClientDerivedStats{Total: len(tutors), ByStatus: make(map[string]int)}
	var ratingSum float64
	for _, t := range tutors {
		stats.ByStatus[t.Status]++
		stats.TotalStudents += t.Students
		ratingSum += t.Rating
	}
	if len(tutors) > 0 {
		stats.AverageRating = ratingSum / float64(len(tutors))
	}
	return stats
}

// DeriveCourseStats aggregates the loaded course collection.
func DeriveCourseStats(courses []Course) ClientDerivedStats {
	stats := ClientDerivedStats{Total: len(courses), ByStatus: make(map[string]int)}
	var ratingSum float64
	for _, c := range courses {
		stats.ByStatus[c.Status]++
		stats.TotalStudents += c.Students
		ratingSum += c.Rating
	}
	if len(courses) > 0 {
		stats.AverageRating = ratingSum / float64(len(courses))
	}
	return stats
}

// DeriveUserStats aggregates the loaded user collection.
func DeriveUserStats(users []User) ClientDerivedStats {
	stats := ClientDerivedStats{Total: len(users), ByStatus: make(map[string]int)}
	for _, u := range users {
		stats.ByStatus[u.Status]++
	}
	return stats
}
