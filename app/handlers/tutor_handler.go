package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/middleware"
	"github.com/alfurqan/academy-admin/app/services"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/repository"
	"github.com/alfurqan/academy-admin/utils"
)

// TutorHandlerInterface defines the contract for tutor handlers
type TutorHandlerInterface interface {
	ListTutors(c fiber.Ctx) error
	GetTutor(c fiber.Ctx) error
	CreateTutor(c fiber.Ctx) error
	UpdateTutor(c fiber.Ctx) error
	ToggleTutorStatus(c fiber.Ctx) error
	DeleteTutor(c fiber.Ctx) error
	BulkToggleTutorStatus(c fiber.Ctx) error
	BulkDeleteTutors(c fiber.Ctx) error
	ReloadTutors(c fiber.Ctx) error
}

// TutorHandler handles tutor management HTTP requests
type TutorHandler struct {
	tutorFlow businessflow.TutorFlow
	validator *validator.Validate
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(tutorFlow businessflow.TutorFlow) *TutorHandler {
	return &TutorHandler{
		tutorFlow: tutorFlow,
		validator: newValidator(),
	}
}

func (h *TutorHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TutorHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListTutors returns the caller's current tutor table view
// @Summary List tutors
// @Description Derive the tutor table page for the caller's workspace; query params override search, filters, sort and page
// @Tags Tutors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.TutorListResponse} "Tutors retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Missing or invalid session"
// @Failure 503 {object} dto.APIResponse "Collection failed to load"
// @Router /api/v1/admin/tutors [get]
func (h *TutorHandler) ListTutors(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	var query dto.TutorListQuery
	if err := c.Bind().Query(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY", err.Error())
	}
	if err := h.validator.Struct(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.tutorFlow.ListTutors(h.createRequestContext(c, "/api/v1/admin/tutors"), session, &query)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to list tutors", "LIST_TUTORS_FAILED")
	}
	if result.State == string(repository.StateFailed) {
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, result.Message, "COLLECTION_UNAVAILABLE", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetTutor returns a single tutor
// @Summary Get tutor
// @Tags Tutors
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=dto.TutorResponse} "Tutor retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Tutor not found"
// @Router /api/v1/admin/tutors/{id} [get]
func (h *TutorHandler) GetTutor(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tutor id is required", "INVALID_ID", nil)
	}

	result, err := h.tutorFlow.GetTutor(h.createRequestContext(c, "/api/v1/admin/tutors/{id}"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get tutor", "GET_TUTOR_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateTutor creates a tutor through the backend
// @Summary Create tutor
// @Description Forward a tutor create (JSON or multipart with photo) and prepend the canonical record
// @Tags Tutors
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body dto.CreateTutorRequest true "Tutor data"
// @Success 201 {object} dto.APIResponse{data=dto.TutorResponse} "Tutor created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/tutors [post]
func (h *TutorHandler) CreateTutor(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	var req dto.CreateTutorRequest
	if err := c.Bind().Body(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	photo, err := h.photoUpload(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid photo upload", "INVALID_PHOTO", err.Error())
	}

	result, err := h.tutorFlow.CreateTutor(h.createRequestContext(c, "/api/v1/admin/tutors"), session, &req, photo)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to create tutor", "CREATE_TUTOR_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// UpdateTutor applies a full update to a tutor
// @Summary Update tutor
// @Tags Tutors
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Tutor ID"
// @Param request body dto.UpdateTutorRequest true "Tutor data"
// @Success 200 {object} dto.APIResponse{data=dto.TutorResponse} "Tutor updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/tutors/{id} [put]
func (h *TutorHandler) UpdateTutor(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tutor id is required", "INVALID_ID", nil)
	}

	var req dto.UpdateTutorRequest
	if err := c.Bind().Body(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	photo, err := h.photoUpload(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid photo upload", "INVALID_PHOTO", err.Error())
	}

	result, err := h.tutorFlow.UpdateTutor(h.createRequestContext(c, "/api/v1/admin/tutors/{id}"), session, id, &req, photo)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to update tutor", "UPDATE_TUTOR_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ToggleTutorStatus flips a tutor's status
// @Summary Toggle tutor status
// @Tags Tutors
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=dto.TutorResponse} "Tutor status updated successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/tutors/{id}/toggle-status [patch]
func (h *TutorHandler) ToggleTutorStatus(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tutor id is required", "INVALID_ID", nil)
	}

	result, err := h.tutorFlow.ToggleTutorStatus(h.createRequestContext(c, "/api/v1/admin/tutors/{id}/toggle-status"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to toggle tutor status", "TOGGLE_TUTOR_STATUS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteTutor deletes a tutor
// @Summary Delete tutor
// @Tags Tutors
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} dto.APIResponse "Tutor deleted successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/tutors/{id} [delete]
func (h *TutorHandler) DeleteTutor(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tutor id is required", "INVALID_ID", nil)
	}

	if err := h.tutorFlow.DeleteTutor(h.createRequestContext(c, "/api/v1/admin/tutors/{id}"), session, id); err != nil {
		return flowErrorResponse(c, err, "Failed to delete tutor", "DELETE_TUTOR_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Tutor deleted successfully", nil)
}

// BulkToggleTutorStatus toggles every selected tutor
// @Summary Bulk toggle tutor status
// @Description Toggle the status of every selected tutor; processing continues past individual failures
// @Tags Tutors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk status update finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/tutors/bulk/status [post]
func (h *TutorHandler) BulkToggleTutorStatus(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.tutorFlow.BulkToggleTutorStatus(h.createRequestContext(c, "/api/v1/admin/tutors/bulk/status"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk toggle tutors", "BULK_TOGGLE_TUTORS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// BulkDeleteTutors deletes every selected tutor
// @Summary Bulk delete tutors
// @Tags Tutors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk delete finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/tutors/bulk/delete [post]
func (h *TutorHandler) BulkDeleteTutors(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.tutorFlow.BulkDeleteTutors(h.createRequestContext(c, "/api/v1/admin/tutors/bulk/delete"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk delete tutors", "BULK_DELETE_TUTORS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ReloadTutors retries a failed collection load
// @Summary Reload tutors
// @Tags Tutors
// @Produce json
// @Success 200 {object} dto.APIResponse "Tutors reloaded"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/tutors/reload [post]
func (h *TutorHandler) ReloadTutors(c fiber.Ctx) error {
	if err := h.tutorFlow.LoadTutors(h.createRequestContext(c, "/api/v1/admin/tutors/reload")); err != nil {
		return flowErrorResponse(c, err, "Failed to reload tutors", "LOAD_TUTORS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Tutors reloaded", nil)
}

// photoUpload reads the optional photo file into an upload the backend
// client can forward as multipart.
func (h *TutorHandler) photoUpload(c fiber.Ctx) (*services.Upload, error) {
	if !strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		return nil, nil
	}
	fileHeader, err := c.FormFile("photo")
	if err != nil || fileHeader == nil {
		return nil, nil
	}
	return readUpload("photo", fileHeader)
}

func readUpload(field string, fileHeader *multipart.FileHeader) (*services.Upload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.Upload{
		FieldName:   field,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func (h *TutorHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}
