package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required,alpha_space,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=student parent admin"`
	Gender  string `json:"gender" validate:"omitempty,oneof=male female"`
	Status  string `json:"status" validate:"required,oneof=Active Suspended"`
	Country string `json:"country" validate:"omitempty,max=60"`
}

// UpdateUserRequest is the payload for a full user update.
type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required,alpha_space,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=student parent admin"`
	Gender  string `json:"gender" validate:"omitempty,oneof=male female"`
	Status  string `json:"status" validate:"required,oneof=Active Suspended"`
	Country string `json:"country" validate:"omitempty,max=60"`
}

// UserListQuery carries optional overrides for the caller's user workspace.
type UserListQuery struct {
	Search  *string `query:"search"`
	Role    *string `query:"role" validate:"omitempty,oneof=All student parent admin"`
	Status  *string `query:"status" validate:"omitempty,oneof=All Active Suspended"`
	Gender  *string `query:"gender" validate:"omitempty,oneof=All male female"`
	SortBy  *string `query:"sort_by" validate:"omitempty,oneof=name enrolled_courses created_at"`
	SortDir *string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	Page    *int    `query:"page" validate:"omitempty,min=1"`
}

// UserListResponse is one page of the user table.
type UserListResponse struct {
	Message    string            `json:"message"`
	State      string            `json:"state"`
	Items      []models.User     `json:"items"`
	Pagination PaginationDTO     `json:"pagination"`
	Selection  []string          `json:"selection"`
	Modal      models.ModalState `json:"modal"`
}

// UserResponse wraps a single canonical user record.
type UserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}
