package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title         string  `json:"title" validate:"required,max=150"`
	Category      string  `json:"category" validate:"required,oneof=Tajweed Hifz Qiraat Tafsir Arabic"`
	Level         string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Status        string  `json:"status" validate:"required,oneof=Active Draft Archived"`
	TutorID       string  `json:"tutor_id" validate:"omitempty"`
	Price         float64 `json:"price" validate:"omitempty,gte=0"`
	DurationWeeks int     `json:"duration_weeks" validate:"omitempty,gte=1,lte=104"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCourseRequest is the payload for a full course update.
type UpdateCourseRequest struct {
	Title         string  `json:"title" validate:"required,max=150"`
	Category      string  `json:"category" validate:"required,oneof=Tajweed Hifz Qiraat Tafsir Arabic"`
	Level         string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Status        string  `json:"status" validate:"required,oneof=Active Draft Archived"`
	TutorID       string  `json:"tutor_id" validate:"omitempty"`
	Price         float64 `json:"price" validate:"omitempty,gte=0"`
	DurationWeeks int     `json:"duration_weeks" validate:"omitempty,gte=1,lte=104"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
}

// CourseListQuery carries optional overrides for the caller's course
// workspace.
type CourseListQuery struct {
	Search   *string `query:"search"`
	Category *string `query:"category" validate:"omitempty,oneof=All Tajweed Hifz Qiraat Tafsir Arabic"`
	Level    *string `query:"level" validate:"omitempty,oneof=All Beginner Intermediate Advanced"`
	Status   *string `query:"status" validate:"omitempty,oneof=All Active Draft Archived"`
	SortBy   *string `query:"sort_by" validate:"omitempty,oneof=title price students rating created_at"`
	SortDir  *string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	Page     *int    `query:"page" validate:"omitempty,min=1"`
}

// CourseListResponse is one page of the course table.
type CourseListResponse struct {
	Message    string            `json:"message"`
	State      string            `json:"state"`
	Items      []models.Course   `json:"items"`
	Pagination PaginationDTO     `json:"pagination"`
	Selection  []string          `json:"selection"`
	Modal      models.ModalState `json:"modal"`
}

// CourseResponse wraps a single canonical course record.
type CourseResponse struct {
	Message string        `json:"message"`
	Course  models.Course `json:"course"`
}
