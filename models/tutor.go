// Package models contains the canonical entity records exchanged with the academy backend
package models

import (
	"strings"
)

// Tutor status values
const (
	TutorStatusActive   = "Active"
	TutorStatusOnLeave  = "OnLeave"
	TutorStatusInactive = "Inactive"
)

// Gender values shared by tutors and users
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Subjects taught at the academy
const (
	SubjectTajweed = "Tajweed"
	SubjectHifz    = "Hifz"
	SubjectQiraat  = "Qiraat"
	SubjectTafsir  = "Tafsir"
	SubjectArabic  = "Arabic"
)

// AllSubjects lists every legal subject value.
var AllSubjects = []string{SubjectTajweed, SubjectHifz, SubjectQiraat, SubjectTafsir, SubjectArabic}

// Tutor is the canonical tutor record. The backend assigns the ID and
// created_at on creation; created_at stays a raw date string because the
// upstream contract does not guarantee a single format.
type Tutor struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Gender     string   `json:"gender"`
	Status     string   `json:"status"`
	Subjects   []string `json:"subjects"`
	Rating     float64  `json:"rating"`
	Students   int      `json:"students"`
	HourlyRate float64  `json:"hourly_rate,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func (t Tutor) RecordID() string { return t.ID }

// MatchesQuery reports whether the tutor matches a free-text search over
// name, email and subjects. The query is expected to be pre-trimmed; an
// empty query matches everything.
func (t Tutor) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Email), q) {
		return true
	}
	for _, s := range t.Subjects {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func (t Tutor) IsActive() bool { return t.Status == TutorStatusActive }

func IsValidTutorStatus(s string) bool {
	switch s {
	case TutorStatusActive, TutorStatusOnLeave, TutorStatusInactive:
		return true
	}
	return false
}

func IsValidGender(s string) bool {
	return s == GenderMale || s == GenderFemale
}

func IsValidSubject(s string) bool {
	for _, v := range AllSubjects {
		if v == s {
			return true
		}
	}
	return false
}

// TutorFilter holds the closed set of tutor filter keys. Every key defaults
// to FilterAll meaning "no constraint on this field".
type TutorFilter struct {
	Status  string `json:"status"`
	Gender  string `json:"gender"`
	Subject string `json:"subject"`
}

// NewTutorFilter returns a filter with every key at the FilterAll sentinel.
func NewTutorFilter() TutorFilter {
	return TutorFilter{Status: FilterAll, Gender: FilterAll, Subject: FilterAll}
}

// Normalized maps empty keys to the FilterAll sentinel so zero values
// behave like the default filter.
func (f TutorFilter) Normalized() TutorFilter {
	f.Status = NormalizeFilterValue(f.Status)
	f.Gender = NormalizeFilterValue(f.Gender)
	f.Subject = NormalizeFilterValue(f.Subject)
	return f
}

// Matches applies the conjunction of all non-All keys. The subject key uses
// "contains" semantics because the record field is array-valued.
func (f TutorFilter) Matches(t Tutor) bool {
	f = f.Normalized()
	if f.Status != FilterAll && t.Status != f.Status {
		return false
	}
	if f.Gender != FilterAll && t.Gender != f.Gender {
		return false
	}
	if f.Subject != FilterAll {
		found := false
		for _, s := range t.Subjects {
			if s == f.Subject {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsDefault reports whether no key constrains the collection.
func (f TutorFilter) IsDefault() bool {
	f = f.Normalized()
	return f.Status == FilterAll && f.Gender == FilterAll && f.Subject == FilterAll
}

// TutorSortKey enumerates the sortable tutor columns.
type TutorSortKey string

const (
	TutorSortName     TutorSortKey = "name"
	TutorSortRating   TutorSortKey = "rating"
	TutorSortStudents TutorSortKey = "students"
	TutorSortCreated  TutorSortKey = "created_at"
)

func (k TutorSortKey) Valid() bool {
	switch k {
	case TutorSortName, TutorSortRating, TutorSortStudents, TutorSortCreated:
		return true
	}
	return false
}

// CompareTutors orders two tutors by the given key in ascending direction.
// String keys compare case-insensitively, numeric keys numerically and date
// keys chronologically; missing or unparsable values sort first.
func CompareTutors(a, b Tutor, key TutorSortKey) int {
	switch key {
	case TutorSortRating:
		return CompareFloats(a.Rating, b.Rating)
	case TutorSortStudents:
		return CompareInts(a.Students, b.Students)
	case TutorSortCreated:
		return CompareDateStrings(a.CreatedAt, b.CreatedAt)
	default:
		return CompareStringsFold(a.Name, b.Name)
	}
}
