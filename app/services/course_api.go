package services

import (
	"context"
	"net/url"

	"github.com/alfurqan/academy-admin/models"
)

// CourseAPI is the backend surface for the course collection.
type CourseAPI interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, payload any) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, payload any) (*models.Course, error)
	ToggleCourseStatus(ctx context.Context, id string) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// ListCourses fetches the full course collection.
func (c *AcademyClient) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.GetJSON(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse fetches one course by id.
func (c *AcademyClient) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := c.GetJSON(ctx, "/courses/"+url.PathEscape(id), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a course and returns the canonical record.
func (c *AcademyClient) CreateCourse(ctx context.Context, payload any) (*models.Course, error) {
	var course models.Course
	if err := c.PostJSON(ctx, "/courses", payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse fully updates a course and returns the canonical record.
func (c *AcademyClient) UpdateCourse(ctx context.Context, id string, payload any) (*models.Course, error) {
	var course models.Course
	if err := c.PutJSON(ctx, "/courses/"+url.PathEscape(id), payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ToggleCourseStatus flips the course between Active and Archived.
func (c *AcademyClient) ToggleCourseStatus(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := c.Patch(ctx, "/courses/"+url.PathEscape(id)+"/toggle-status", &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes a course by id.
func (c *AcademyClient) DeleteCourse(ctx context.Context, id string) error {
	return c.Delete(ctx, "/courses/"+url.PathEscape(id))
}
