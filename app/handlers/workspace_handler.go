package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/middleware"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/utils"
)

// WorkspaceHandlerInterface defines the contract for workspace handlers
type WorkspaceHandlerInterface interface {
	OpenSession(c fiber.Ctx) error
	ToggleSelection(c fiber.Ctx) error
	ToggleSelectPage(c fiber.Ctx) error
	ClearSelection(c fiber.Ctx) error
	OpenModal(c fiber.Ctx) error
	CloseModal(c fiber.Ctx) error
	GetPreferences(c fiber.Ctx) error
	UpdatePreferences(c fiber.Ctx) error
}

// WorkspaceHandler handles session, selection, overlay and preferences
// HTTP requests
type WorkspaceHandler struct {
	workspaceFlow businessflow.WorkspaceFlow
	validator     *validator.Validate
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceFlow businessflow.WorkspaceFlow) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceFlow: workspaceFlow,
		validator:     newValidator(),
	}
}

func (h *WorkspaceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *WorkspaceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OpenSession opens a dashboard session with fresh workspaces
// @Summary Open session
// @Description Create fresh table workspaces for every entity kind and issue a session token
// @Tags Workspace
// @Produce json
// @Success 201 {object} dto.APIResponse{data=dto.OpenSessionResponse} "Dashboard session opened"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/session [post]
func (h *WorkspaceHandler) OpenSession(c fiber.Ctx) error {
	result, err := h.workspaceFlow.OpenSession(h.createRequestContext(c, "/api/v1/admin/session"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to open session", "OPEN_SESSION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ToggleSelection flips one row's selection for the entity table
// @Summary Toggle row selection
// @Tags Workspace
// @Accept json
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Param request body dto.ToggleSelectionRequest true "Row id"
// @Success 200 {object} dto.APIResponse{data=dto.SelectionResponse} "Selection updated"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Router /api/v1/admin/{entity}/selection/toggle [post]
func (h *WorkspaceHandler) ToggleSelection(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	var req dto.ToggleSelectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.workspaceFlow.ToggleSelection(h.createRequestContext(c, "/api/v1/admin/{entity}/selection/toggle"), session, c.Params("entity"), req.ID)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to toggle selection", "TOGGLE_SELECTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ToggleSelectPage selects or deselects every row on the current page
// @Summary Toggle page selection
// @Description Select every row on the visible page, or deselect them all when already selected; other pages keep their selections
// @Tags Workspace
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Success 200 {object} dto.APIResponse{data=dto.SelectionResponse} "Selection updated"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Router /api/v1/admin/{entity}/selection/toggle-page [post]
func (h *WorkspaceHandler) ToggleSelectPage(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.workspaceFlow.ToggleSelectPage(h.createRequestContext(c, "/api/v1/admin/{entity}/selection/toggle-page"), session, c.Params("entity"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to toggle page selection", "TOGGLE_PAGE_SELECTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ClearSelection empties the entity table's selection
// @Summary Clear selection
// @Tags Workspace
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Success 200 {object} dto.APIResponse{data=dto.SelectionResponse} "Selection cleared"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Router /api/v1/admin/{entity}/selection/clear [post]
func (h *WorkspaceHandler) ClearSelection(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.workspaceFlow.ClearSelection(h.createRequestContext(c, "/api/v1/admin/{entity}/selection/clear"), session, c.Params("entity"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to clear selection", "CLEAR_SELECTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// OpenModal activates an overlay for the entity table
// @Summary Open overlay
// @Description Activate a view/edit/delete/create overlay; opening one implicitly closes any other
// @Tags Workspace
// @Accept json
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Param request body dto.OpenModalRequest true "Overlay kind and optional record id"
// @Success 200 {object} dto.APIResponse{data=dto.ModalResponse} "Overlay opened"
// @Failure 400 {object} dto.APIResponse "Invalid overlay kind or missing record id"
// @Failure 404 {object} dto.APIResponse "Referenced record no longer exists"
// @Router /api/v1/admin/{entity}/modal/open [post]
func (h *WorkspaceHandler) OpenModal(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	var req dto.OpenModalRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.workspaceFlow.OpenModal(h.createRequestContext(c, "/api/v1/admin/{entity}/modal/open"), session, c.Params("entity"), &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to open overlay", "OPEN_MODAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CloseModal deactivates the entity table's overlay
// @Summary Close overlay
// @Tags Workspace
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Success 200 {object} dto.APIResponse{data=dto.ModalResponse} "Overlay closed"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Router /api/v1/admin/{entity}/modal/close [post]
func (h *WorkspaceHandler) CloseModal(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.workspaceFlow.CloseModal(h.createRequestContext(c, "/api/v1/admin/{entity}/modal/close"), session, c.Params("entity"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to close overlay", "CLOSE_MODAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetPreferences returns the stored UI preferences
// @Summary Get preferences
// @Tags Workspace
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PreferencesResponse} "Preferences retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/preferences [get]
func (h *WorkspaceHandler) GetPreferences(c fiber.Ctx) error {
	result, err := h.workspaceFlow.GetPreferences(h.createRequestContext(c, "/api/v1/admin/preferences"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get preferences", "GET_PREFERENCES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdatePreferences persists UI preference changes immediately
// @Summary Update preferences
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreferencesRequest true "Preference changes"
// @Success 200 {object} dto.APIResponse{data=dto.PreferencesResponse} "Preferences updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/preferences [put]
func (h *WorkspaceHandler) UpdatePreferences(c fiber.Ctx) error {
	var req dto.UpdatePreferencesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.workspaceFlow.UpdatePreferences(h.createRequestContext(c, "/api/v1/admin/preferences"), &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to update preferences", "UPDATE_PREFERENCES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *WorkspaceHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}
