package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/utils"
)

// StatisticsHandlerInterface defines the contract for statistics handlers
type StatisticsHandlerInterface interface {
	DashboardStatistics(c fiber.Ctx) error
	EntityStatistics(c fiber.Ctx) error
	DerivedStatistics(c fiber.Ctx) error
}

// StatisticsHandler handles statistics HTTP requests
type StatisticsHandler struct {
	statisticsFlow businessflow.StatisticsFlow
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statisticsFlow businessflow.StatisticsFlow) *StatisticsHandler {
	return &StatisticsHandler{statisticsFlow: statisticsFlow}
}

func (h *StatisticsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *StatisticsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// DashboardStatistics proxies the backend dashboard summary
// @Summary Dashboard statistics
// @Description Backend-computed aggregates over the full dataset; may diverge from locally derived counts
// @Tags Statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatisticsResponse} "Dashboard statistics retrieved successfully"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/statistics/dashboard [get]
func (h *StatisticsHandler) DashboardStatistics(c fiber.Ctx) error {
	result, err := h.statisticsFlow.DashboardStatistics(h.createRequestContext(c, "/api/v1/admin/statistics/dashboard"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get dashboard statistics", "DASHBOARD_STATISTICS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// EntityStatistics proxies the backend per-entity summary
// @Summary Entity statistics
// @Tags Statistics
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Success 200 {object} dto.APIResponse{data=dto.EntityStatisticsResponse} "Entity statistics retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Failure 502 {object} dto.APIResponse "Backend failure"
// @Router /api/v1/admin/statistics/{entity} [get]
func (h *StatisticsHandler) EntityStatistics(c fiber.Ctx) error {
	result, err := h.statisticsFlow.EntityStatistics(h.createRequestContext(c, "/api/v1/admin/statistics/{entity}"), c.Params("entity"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to get entity statistics", "ENTITY_STATISTICS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DerivedStatistics computes stat-card aggregates from the loaded collection
// @Summary Derived statistics
// @Description Aggregates derived from the gateway's loaded collection, independent of active filters
// @Tags Statistics
// @Produce json
// @Param entity path string true "Entity kind" Enums(tutors, courses, users)
// @Success 200 {object} dto.APIResponse{data=dto.DerivedStatisticsResponse} "Derived statistics computed successfully"
// @Failure 400 {object} dto.APIResponse "Unknown entity kind"
// @Router /api/v1/admin/{entity}/stats [get]
func (h *StatisticsHandler) DerivedStatistics(c fiber.Ctx) error {
	result, err := h.statisticsFlow.DerivedStatistics(h.createRequestContext(c, "/api/v1/admin/{entity}/stats"), c.Params("entity"))
	if err != nil {
		return flowErrorResponse(c, err, "Failed to compute derived statistics", "DERIVED_STATISTICS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *StatisticsHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}
