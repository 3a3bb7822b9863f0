package models

import (
	"strings"
)

// User role values
const (
	UserRoleStudent = "student"
	UserRoleParent  = "parent"
	UserRoleAdmin   = "admin"
)

// User status values
const (
	UserStatusActive    = "Active"
	UserStatusSuspended = "Suspended"
)

// User is the canonical user record returned by the backend.
type User struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Gender          string `json:"gender,omitempty"`
	Status          string `json:"status"`
	Country         string `json:"country,omitempty"`
	EnrolledCourses int    `json:"enrolled_courses"`
	CreatedAt       string `json:"created_at"`
}

func (u User) RecordID() string { return u.ID }

// MatchesQuery searches name, email and country.
func (u User) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Country), q)
}

func (u User) IsActive() bool { return u.Status == UserStatusActive }

func IsValidUserRole(s string) bool {
	switch s {
	case UserRoleStudent, UserRoleParent, UserRoleAdmin:
		return true
	}
	return false
}

func IsValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

// UserFilter holds the closed set of user filter keys.
type UserFilter struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	Gender string `json:"gender"`
}

// NewUserFilter returns a filter with every key at the FilterAll sentinel.
func NewUserFilter() UserFilter {
	return UserFilter{Role: FilterAll, Status: FilterAll, Gender: FilterAll}
}

func (f UserFilter) Normalized() UserFilter {
	f.Role = NormalizeFilterValue(f.Role)
	f.Status = NormalizeFilterValue(f.Status)
	f.Gender = NormalizeFilterValue(f.Gender)
	return f
}

// Matches applies the conjunction of all non-All keys.
func (f UserFilter) Matches(u User) bool {
	f = f.Normalized()
	if f.Role != FilterAll && u.Role != f.Role {
		return false
	}
	if f.Status != FilterAll && u.Status != f.Status {
		return false
	}
	if f.Gender != FilterAll && u.Gender != f.Gender {
		return false
	}
	return true
}

func (f UserFilter) IsDefault() bool {
	f = f.Normalized()
	return f.Role == FilterAll && f.Status == FilterAll && f.Gender == FilterAll
}

// UserSortKey enumerates the sortable user columns.
type UserSortKey string

const (
	UserSortName     UserSortKey = "name"
	UserSortEnrolled UserSortKey = "enrolled_courses"
	UserSortCreated  UserSortKey = "created_at"
)

func (k UserSortKey) Valid() bool {
	switch k {
	case UserSortName, UserSortEnrolled, UserSortCreated:
		return true
	}
	return false
}

// CompareUsers orders two users by the given key in ascending direction.
func CompareUsers(a, b User, key UserSortKey) int {
	switch key {
	case UserSortEnrolled:
		return CompareInts(a.EnrolledCourses, b.EnrolledCourses)
	case UserSortCreated:
		return CompareDateStrings(a.CreatedAt, b.CreatedAt)
	default:
		return CompareStringsFold(a.Name, b.Name)
	}
}
