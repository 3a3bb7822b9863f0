// Package testing provides test fixtures for the academy admin gateway
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/alfurqan/academy-admin/models"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	rng *rand.Rand
}

// NewTestFixtures creates a new test fixtures instance with a fixed seed so
// generated collections are reproducible across runs.
func NewTestFixtures() *TestFixtures {
	return &TestFixtures{rng: rand.New(rand.NewSource(42))}
}

// NewTutor creates a tutor record with sane defaults. Callers mutate the
// returned value for scenario-specific fields.
func (tf *TestFixtures) NewTutor() models.Tutor {
	n := tf.rng.Intn(10000)
	return models.Tutor{
		ID:         uuid.New().String(),
		Name:       fmt.Sprintf("Tutor %04d", n),
		Email:      fmt.Sprintf("tutor%04d@alfurqan.example", n),
		Phone:      fmt.Sprintf("+9665%08d", tf.rng.Intn(100000000)),
		Gender:     models.GenderMale,
		Status:     models.TutorStatusActive,
		Subjects:   []string{models.SubjectTajweed},
		Rating:     4.0 + tf.rng.Float64(),
		Students:   tf.rng.Intn(60),
		HourlyRate: 15 + float64(tf.rng.Intn(30)),
		CreatedAt:  tf.pastDate(),
	}
}

// NewCourse creates a course record with sane defaults.
func (tf *TestFixtures) NewCourse() models.Course {
	n := tf.rng.Intn(10000)
	return models.Course{
		ID:            uuid.New().String(),
		Title:         fmt.Sprintf("Course %04d", n),
		Category:      models.CourseCategoryTajweed,
		Level:         models.CourseLevelBeginner,
		Status:        models.CourseStatusActive,
		TutorName:     fmt.Sprintf("Tutor %04d", tf.rng.Intn(10000)),
		Price:         float64(20 + tf.rng.Intn(180)),
		DurationWeeks: 4 + tf.rng.Intn(12),
		Students:      tf.rng.Intn(120),
		Rating:        3.5 + tf.rng.Float64()*1.5,
		CreatedAt:     tf.pastDate(),
	}
}

// NewUser creates a user record with sane defaults.
func (tf *TestFixtures) NewUser() models.User {
	n := tf.rng.Intn(10000)
	return models.User{
		ID:              uuid.New().String(),
		Name:            fmt.Sprintf("User %04d", n),
		Email:           fmt.Sprintf("user%04d@alfurqan.example", n),
		Role:            models.UserRoleStudent,
		Gender:          models.GenderFemale,
		Status:          models.UserStatusActive,
		Country:         "Egypt",
		EnrolledCourses: tf.rng.Intn(5),
		CreatedAt:       tf.pastDate(),
	}
}

// Tutors creates n tutor records.
func (tf *TestFixtures) Tutors(n int) []models.Tutor {
	out := make([]models.Tutor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, tf.NewTutor())
	}
	return out
}

// Courses creates n course records.
func (tf *TestFixtures) Courses(n int) []models.Course {
	out := make([]models.Course, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, tf.NewCourse())
	}
	return out
}

// Users creates n user records.
func (tf *TestFixtures) Users(n int) []models.User {
	out := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, tf.NewUser())
	}
	return out
}

// pastDate returns a date string within the last two years, formatted the
// way the backend emits created_at.
func (tf *TestFixtures) pastDate() string {
	days := tf.rng.Intn(730)
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}
