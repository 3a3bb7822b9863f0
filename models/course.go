package models

import (
	"strings"
)

// Course category values mirror the academy subjects
const (
	CourseCategoryTajweed = SubjectTajweed
	CourseCategoryHifz    = SubjectHifz
	CourseCategoryQiraat  = SubjectQiraat
	CourseCategoryTafsir  = SubjectTafsir
	CourseCategoryArabic  = SubjectArabic
)

// Course level values
const (
	CourseLevelBeginner     = "Beginner"
	CourseLevelIntermediate = "Intermediate"
	CourseLevelAdvanced     = "Advanced"
)

// Course status values
const (
	CourseStatusActive   = "Active"
	CourseStatusDraft    = "Draft"
	CourseStatusArchived = "Archived"
)

// Course is the canonical course record returned by the backend.
type Course struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	Level         string  `json:"level"`
	Status        string  `json:"status"`
	TutorID       string  `json:"tutor_id,omitempty"`
	TutorName     string  `json:"tutor_name,omitempty"`
	Price         float64 `json:"price"`
	DurationWeeks int     `json:"duration_weeks"`
	Students      int     `json:"students"`
	Rating        float64 `json:"rating"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func (c Course) RecordID() string { return c.ID }

// MatchesQuery searches title, tutor name and category.
func (c Course) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.TutorName), q) ||
		strings.Contains(strings.ToLower(c.Category), q)
}

func (c Course) IsActive() bool { return c.Status == CourseStatusActive }

func IsValidCourseCategory(s string) bool {
	return IsValidSubject(s)
}

func IsValidCourseLevel(s string) bool {
	switch s {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

func IsValidCourseStatus(s string) bool {
	switch s {
	case CourseStatusActive, CourseStatusDraft, CourseStatusArchived:
		return true
	}
	return false
}

// CourseFilter holds the closed set of course filter keys.
type CourseFilter struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Status   string `json:"status"`
}

// NewCourseFilter returns a filter with every key at the FilterAll sentinel.
func NewCourseFilter() CourseFilter {
	return CourseFilter{Category: FilterAll, Level: FilterAll, Status: FilterAll}
}

func (f CourseFilter) Normalized() CourseFilter {
	f.Category = NormalizeFilterValue(f.Category)
	f.Level = NormalizeFilterValue(f.Level)
	f.Status = NormalizeFilterValue(f.Status)
	return f
}

// Matches applies the conjunction of all non-All keys.
func (f CourseFilter) Matches(c Course) bool {
	f = f.Normalized()
	if f.Category != FilterAll && c.Category != f.Category {
		return false
	}
	if f.Level != FilterAll && c.Level != f.Level {
		return false
	}
	if f.Status != FilterAll && c.Status != f.Status {
		return false
	}
	return true
}

func (f CourseFilter) IsDefault() bool {
	f = f.Normalized()
	return f.Category == FilterAll && f.Level == FilterAll && f.Status == FilterAll
}

// CourseSortKey enumerates the sortable course columns.
type CourseSortKey string

const (
	CourseSortTitle    CourseSortKey = "title"
	CourseSortPrice    CourseSortKey = "price"
	CourseSortStudents CourseSortKey = "students"
	CourseSortRating   CourseSortKey = "rating"
	CourseSortCreated  CourseSortKey = "created_at"
)

func (k CourseSortKey) Valid() bool {
	switch k {
	case CourseSortTitle, CourseSortPrice, CourseSortStudents, CourseSortRating, CourseSortCreated:
		return true
	}
	return false
}

// CompareCourses orders two courses by the given key in ascending direction.
func CompareCourses(a, b Course, key CourseSortKey) int {
	switch key {
	case CourseSortPrice:
		return CompareFloats(a.Price, b.Price)
	case CourseSortStudents:
		return CompareInts(a.Students, b.Students)
	case CourseSortRating:
		return CompareFloats(a.Rating, b.Rating)
	case CourseSortCreated:
		return CompareDateStrings(a.CreatedAt, b.CreatedAt)
	default:
		return CompareStringsFold(a.Title, b.Title)
	}
}
