package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/middleware"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/repository"
	"github.com/alfurqan/academy-admin/utils"
)

// CourseHandlerInterface defines the contract for course handlers
type CourseHandlerInterface interface {
	ListCourses(c fiber.Ctx) error
	GetCourse(c fiber.Ctx) error
	CreateCourse(c fiber.Ctx) error
	UpdateCourse(c fiber.Ctx) error
	ToggleCourseStatus(c fiber.Ctx) error
	DeleteCourse(c fiber.Ctx) error
	BulkToggleCourseStatus(c fiber.Ctx) error
	BulkDeleteCourses(c fiber.Ctx) error
	ReloadCourses(c fiber.Ctx) error
}

// CourseHandler handles course management HTTP requests
type CourseHandler struct {
	courseFlow businessflow.CourseFlow
	validator  *validator.Validate
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseFlow businessflow.CourseFlow) *CourseHandler {
	return &CourseHandler{
		courseFlow: courseFlow,
		validator:  newValidator(),
	}
}

func (h *CourseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CourseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCourses returns the caller's current course table view
// @Summary List courses
// @Description Derive the course table page for the caller's workspace; query params override search, filters, sort and page
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Missing or invalid session"
// @Failure 503 {object} dto.APIResponse "Collection failed to load"
// @Router /api/v1/admin/courses [get]
func (h *CourseHandler) ListCourses(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	var query dto.CourseListQuery
	if err := c.Bind().Query(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY", err.Error())
	}
	if err := h.validator.Struct(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.courseFlow.ListCourses(h.createRequestContext(c, "/api/v1/admin/courses"), session, &query)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to list courses", "LIST_COURSES_FAILED")
	}
	if result.State == string(repository.StateFailed) {
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, result.Message, "COLLECTION_UNAVAILABLE", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetCourse returns a single course
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /api/v1/admin/courses/{id} [get]
func (h *CourseHandler) GetCourse(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Course id is required", "INVALID_ID", nil)
	}

	result, err := h.courseFlow.GetCourse(h.createRequestContext(c, "/api/v1/admin/courses/{id}"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get course", "GET_COURSE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateCourse creates a course through the backend
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/courses [post]
func (h *CourseHandler) CreateCourse(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	var req dto.CreateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.courseFlow.CreateCourse(h.createRequestContext(c, "/api/v1/admin/courses"), session, &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to create course", "CREATE_COURSE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// UpdateCourse applies a full update to a course
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Course id is required", "INVALID_ID", nil)
	}

	var req dto.UpdateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.courseFlow.UpdateCourse(h.createRequestContext(c, "/api/v1/admin/courses/{id}"), session, id, &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to update course", "UPDATE_COURSE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ToggleCourseStatus flips a course's status
// @Summary Toggle course status
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course status updated successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/courses/{id}/toggle-status [patch]
func (h *CourseHandler) ToggleCourseStatus(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Course id is required", "INVALID_ID", nil)
	}

	result, err := h.courseFlow.ToggleCourseStatus(h.createRequestContext(c, "/api/v1/admin/courses/{id}/toggle-status"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to toggle course status", "TOGGLE_COURSE_STATUS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Course id is required", "INVALID_ID", nil)
	}

	if err := h.courseFlow.DeleteCourse(h.createRequestContext(c, "/api/v1/admin/courses/{id}"), session, id); err != nil {
		return flowErrorResponse(c, err, "Failed to delete course", "DELETE_COURSE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Course deleted successfully", nil)
}

// BulkToggleCourseStatus toggles every selected course
// @Summary Bulk toggle course status
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk status update finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/courses/bulk/status [post]
func (h *CourseHandler) BulkToggleCourseStatus(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.courseFlow.BulkToggleCourseStatus(h.createRequestContext(c, "/api/v1/admin/courses/bulk/status"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk toggle courses", "BULK_TOGGLE_COURSES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// BulkDeleteCourses deletes every selected course
// @Summary Bulk delete courses
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk delete finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/courses/bulk/delete [post]
func (h *CourseHandler) BulkDeleteCourses(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.courseFlow.BulkDeleteCourses(h.createRequestContext(c, "/api/v1/admin/courses/bulk/delete"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk delete courses", "BULK_DELETE_COURSES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ReloadCourses retries a failed collection load
// @Summary Reload courses
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.APIResponse "Courses reloaded"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/courses/reload [post]
func (h *CourseHandler) ReloadCourses(c fiber.Ctx) error {
	if err := h.courseFlow.LoadCourses(h.createRequestContext(c, "/api/v1/admin/courses/reload")); err != nil {
		return flowErrorResponse(c, err, "Failed to reload courses", "LOAD_COURSES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Courses reloaded", nil)
}

func (h *CourseHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}
