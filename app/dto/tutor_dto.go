package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// CreateTutorRequest is the payload for creating a tutor. The backend
// assigns the id and created_at and returns the canonical record.
type CreateTutorRequest struct {
	Name       string   `json:"name" form:"name" validate:"required,alpha_space,max=100"`
	Email      string   `json:"email" form:"email" validate:"required,email"`
	Phone      string   `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Gender     string   `json:"gender" form:"gender" validate:"required,oneof=male female"`
	Status     string   `json:"status" form:"status" validate:"required,oneof=Active OnLeave Inactive"`
	Subjects   []string `json:"subjects" form:"subjects" validate:"required,min=1,dive,oneof=Tajweed Hifz Qiraat Tafsir Arabic"`
	HourlyRate float64  `json:"hourly_rate" form:"hourly_rate" validate:"omitempty,gte=0"`
	Bio        string   `json:"bio" form:"bio" validate:"omitempty,max=2000"`
}

// UpdateTutorRequest is the payload for a full tutor update.
type UpdateTutorRequest struct {
	Name       string   `json:"name" form:"name" validate:"required,alpha_space,max=100"`
	Email      string   `json:"email" form:"email" validate:"required,email"`
	Phone      string   `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Gender     string   `json:"gender" form:"gender" validate:"required,oneof=male female"`
	Status     string   `json:"status" form:"status" validate:"required,oneof=Active OnLeave Inactive"`
	Subjects   []string `json:"subjects" form:"subjects" validate:"required,min=1,dive,oneof=Tajweed Hifz Qiraat Tafsir Arabic"`
	HourlyRate float64  `json:"hourly_rate" form:"hourly_rate" validate:"omitempty,gte=0"`
	Bio        string   `json:"bio" form:"bio" validate:"omitempty,max=2000"`
}

// TutorListQuery carries optional overrides for the caller's tutor
// workspace. Changing search or any filter resets the page to 1.
type TutorListQuery struct {
	Search  *string `query:"search"`
	Status  *string `query:"status" validate:"omitempty,oneof=All Active OnLeave Inactive"`
	Gender  *string `query:"gender" validate:"omitempty,oneof=All male female"`
	Subject *string `query:"subject" validate:"omitempty,oneof=All Tajweed Hifz Qiraat Tafsir Arabic"`
	SortBy  *string `query:"sort_by" validate:"omitempty,oneof=name rating students created_at"`
	SortDir *string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	Page    *int    `query:"page" validate:"omitempty,min=1"`
}

// TutorListResponse is one page of the tutor table.
type TutorListResponse struct {
	Message    string           `json:"message"`
	State      string           `json:"state"`
	Items      []models.Tutor   `json:"items"`
	Pagination PaginationDTO    `json:"pagination"`
	Selection  []string         `json:"selection"`
	Modal      models.ModalState `json:"modal"`
}

// TutorResponse wraps a single canonical tutor record.
type TutorResponse struct {
	Message string       `json:"message"`
	Tutor   models.Tutor `json:"tutor"`
}
