package services

import (
	"context"
	"net/url"

	"github.com/alfurqan/academy-admin/models"
)

// UserAPI is the backend surface for the user collection.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, payload any) (*models.User, error)
	UpdateUser(ctx context.Context, id string, payload any) (*models.User, error)
	ToggleUserStatus(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ListUsers fetches the full user collection.
func (c *AcademyClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.GetJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (c *AcademyClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.GetJSON(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user and returns the canonical record.
func (c *AcademyClient) CreateUser(ctx context.Context, payload any) (*models.User, error) {
	var user models.User
	if err := c.PostJSON(ctx, "/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser fully updates a user and returns the canonical record.
func (c *AcademyClient) UpdateUser(ctx context.Context, id string, payload any) (*models.User, error) {
	var user models.User
	if err := c.PutJSON(ctx, "/users/"+url.PathEscape(id), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleUserStatus flips the user between Active and Suspended.
func (c *AcademyClient) ToggleUserStatus(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.Patch(ctx, "/users/"+url.PathEscape(id)+"/toggle-status", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user by id.
func (c *AcademyClient) DeleteUser(ctx context.Context, id string) error {
	return c.Delete(ctx, "/users/"+url.PathEscape(id))
}
