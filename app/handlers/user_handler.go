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

// UserHandlerInterface defines the contract for user handlers
type UserHandlerInterface interface {
	ListUsers(c fiber.Ctx) error
	GetUser(c fiber.Ctx) error
	CreateUser(c fiber.Ctx) error
	UpdateUser(c fiber.Ctx) error
	ToggleUserStatus(c fiber.Ctx) error
	DeleteUser(c fiber.Ctx) error
	BulkToggleUserStatus(c fiber.Ctx) error
	BulkDeleteUsers(c fiber.Ctx) error
	ReloadUsers(c fiber.Ctx) error
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userFlow  businessflow.UserFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: newValidator(),
	}
}

func (h *UserHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *UserHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListUsers returns the caller's current user table view
// @Summary List users
// @Description Derive the user table page for the caller's workspace; query params override search, filters, sort and page
// @Tags Users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Missing or invalid session"
// @Failure 503 {object} dto.APIResponse "Collection failed to load"
// @Router /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	var query dto.UserListQuery
	if err := c.Bind().Query(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY", err.Error())
	}
	if err := h.validator.Struct(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.userFlow.ListUsers(h.createRequestContext(c, "/api/v1/admin/users"), session, &query)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to list users", "LIST_USERS_FAILED")
	}
	if result.State == string(repository.StateFailed) {
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, result.Message, "COLLECTION_UNAVAILABLE", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetUser returns a single user
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /api/v1/admin/users/{id} [get]
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "User id is required", "INVALID_ID", nil)
	}

	result, err := h.userFlow.GetUser(h.createRequestContext(c, "/api/v1/admin/users/{id}"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get user", "GET_USER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateUser creates a user account through the backend
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/users [post]
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.userFlow.CreateUser(h.createRequestContext(c, "/api/v1/admin/users"), session, &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to create user", "CREATE_USER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// UpdateUser applies a full update to a user
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "User data"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "User id is required", "INVALID_ID", nil)
	}

	var req dto.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.userFlow.UpdateUser(h.createRequestContext(c, "/api/v1/admin/users/{id}"), session, id, &req)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to update user", "UPDATE_USER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ToggleUserStatus flips a user's status
// @Summary Toggle user status
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User status updated successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/users/{id}/toggle-status [patch]
func (h *UserHandler) ToggleUserStatus(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "User id is required", "INVALID_ID", nil)
	}

	result, err := h.userFlow.ToggleUserStatus(h.createRequestContext(c, "/api/v1/admin/users/{id}/toggle-status"), id)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to toggle user status", "TOGGLE_USER_STATUS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteUser deletes a user
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	session, _ := middleware.GetSessionFromContext(c)

	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "User id is required", "INVALID_ID", nil)
	}

	if err := h.userFlow.DeleteUser(h.createRequestContext(c, "/api/v1/admin/users/{id}"), session, id); err != nil {
		return flowErrorResponse(c, err, "Failed to delete user", "DELETE_USER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "User deleted successfully", nil)
}

// BulkToggleUserStatus toggles every selected user
// @Summary Bulk toggle user status
// @Tags Users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk status update finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/users/bulk/status [post]
func (h *UserHandler) BulkToggleUserStatus(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.userFlow.BulkToggleUserStatus(h.createRequestContext(c, "/api/v1/admin/users/bulk/status"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk toggle users", "BULK_TOGGLE_USERS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// BulkDeleteUsers deletes every selected user
// @Summary Bulk delete users
// @Tags Users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BulkResponse} "Bulk delete finished"
// @Failure 400 {object} dto.APIResponse "Selection is empty"
// @Router /api/v1/admin/users/bulk/delete [post]
func (h *UserHandler) BulkDeleteUsers(c fiber.Ctx) error {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Dashboard session not found in context", "MISSING_SESSION", nil)
	}

	result, err := h.userFlow.BulkDeleteUsers(h.createRequestContext(c, "/api/v1/admin/users/bulk/delete"), session)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to bulk delete users", "BULK_DELETE_USERS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ReloadUsers retries a failed collection load
// @Summary Reload users
// @Tags Users
// @Produce json
// @Success 200 {object} dto.APIResponse "Users reloaded"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/users/reload [post]
func (h *UserHandler) ReloadUsers(c fiber.Ctx) error {
	if err := h.userFlow.LoadUsers(h.createRequestContext(c, "/api/v1/admin/users/reload")); err != nil {
		return flowErrorResponse(c, err, "Failed to reload users", "LOAD_USERS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Users reloaded", nil)
}

func (h *UserHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}
