package services

import (
	"context"
	"net/url"

	"github.com/alfurqan/academy-admin/models"
)

// TutorAPI is the backend surface for the tutor collection.
type TutorAPI interface {
	ListTutors(ctx context.Context) ([]models.Tutor, error)
	GetTutor(ctx context.Context, id string) (*models.Tutor, error)
	CreateTutor(ctx context.Context, payload any, photo *Upload) (*models.Tutor, error)
	UpdateTutor(ctx context.Context, id string, payload any, photo *Upload) (*models.Tutor, error)
	ToggleTutorStatus(ctx context.Context, id string) (*models.Tutor, error)
	DeleteTutor(ctx context.Context, id string) error
}

// ListTutors fetches the full tutor collection.
func (c *AcademyClient) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	var tutors []models.Tutor
	if err := c.GetJSON(ctx, "/tutors", &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// GetTutor fetches one tutor by id.
func (c *AcademyClient) GetTutor(ctx context.Context, id string) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := c.GetJSON(ctx, "/tutors/"+url.PathEscape(id), &tutor); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// CreateTutor creates a tutor, switching to multipart when a photo is
// attached, and returns the canonical record with the server-assigned id.
func (c *AcademyClient) CreateTutor(ctx context.Context, payload any, photo *Upload) (*models.Tutor, error) {
	var tutor models.Tutor
	var err error
	if photo != nil {
		err = c.PostMultipart(ctx, "/tutors", payload, photo, &tutor)
	} else {
		err = c.PostJSON(ctx, "/tutors", payload, &tutor)
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

// UpdateTutor fully updates a tutor and returns the canonical record.
func (c *AcademyClient) UpdateTutor(ctx context.Context, id string, payload any, photo *Upload) (*models.Tutor, error) {
	var tutor models.Tutor
	path := "/tutors/" + url.PathEscape(id)
	var err error
	if photo != nil {
		err = c.PutMultipart(ctx, path, payload, photo, &tutor)
	} else {
		err = c.PutJSON(ctx, path, payload, &tutor)
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

// ToggleTutorStatus flips the tutor's active-style status flag.
func (c *AcademyClient) ToggleTutorStatus(ctx context.Context, id string) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := c.Patch(ctx, "/tutors/"+url.PathEscape(id)+"/toggle-status", &tutor); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// DeleteTutor removes a tutor by id.
func (c *AcademyClient) DeleteTutor(ctx context.Context, id string) error {
	return c.Delete(ctx, "/tutors/"+url.PathEscape(id))
}
