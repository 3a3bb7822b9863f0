package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTutorStats(t *testing.T) {
	tutors := []Tutor{
		{Status: TutorStatusActive, Rating: 4.8, Students: 20},
		{Status: TutorStatusActive, Rating: 4.2, Students: 10},
		{Status: TutorStatusOnLeave, Rating: 4.0, Students: 0},
	}

	stats := DeriveTutorStats(tutors)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[TutorStatusActive])
	assert.Equal(t, 1, stats.ByStatus[TutorStatusOnLeave])
	assert.Equal(t, 30, stats.TotalStudents)
	assert.InDelta(t, (4.8+4.2+4.0)/3, stats.AverageRating, 1e-9)
}

func TestDeriveTutorStatsEmpty(t *testing.T) {
	stats := DeriveTutorStats(nil)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AverageRating, "empty collection never divides by zero")
	assert.Empty(t, stats.ByStatus)
}

func TestDeriveCourseStats(t *testing.T) {
	courses := []Course{
		{Status: CourseStatusActive, Rating: 4.5, Students: 40},
		{Status: CourseStatusDraft, Rating: 0, Students: 0},
	}

	stats := DeriveCourseStats(courses)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[CourseStatusActive])
	assert.Equal(t, 1, stats.ByStatus[CourseStatusDraft])
	assert.Equal(t, 40, stats.TotalStudents)
	assert.InDelta(t, 2.25, stats.AverageRating, 1e-9)
}

func TestDeriveUserStats(t *testing.T) {
	users := []User{
		{Status: UserStatusActive},
		{Status: UserStatusActive},
		{Status: UserStatusSuspended},
	}

	stats := DeriveUserStats(users)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[UserStatusActive])
	assert.Equal(t, 1, stats.ByStatus[UserStatusSuspended])
	assert.Zero(t, stats.AverageRating, "users carry no rating")
}

func TestCompareDateStrings(t *testing.T) {
	assert.Negative(t, CompareDateStrings("2024-01-01", "2024-06-01"))
	assert.Positive(t, CompareDateStrings("2025-01-01", "2024-06-01"))
	assert.Zero(t, CompareDateStrings("2024-06-01", "2024-06-01"))

	// Unparsable dates sort first ascending
	assert.Negative(t, CompareDateStrings("not-a-date", "2024-06-01"))
	assert.Zero(t, CompareDateStrings("", "garbage"))
}

func TestCompareFloatsNaN(t *testing.T) {
	nan := math.NaN()

	assert.Negative(t, CompareFloats(nan, 1.0), "missing ratings sort first ascending")
	assert.Positive(t, CompareFloats(1.0, nan))
	assert.Zero(t, CompareFloats(nan, nan))
}
