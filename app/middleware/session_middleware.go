// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
)

// SessionLocalKey is the fiber locals key holding the resolved dashboard
// session.
const SessionLocalKey = "dashboard_session"

// SessionMiddleware resolves workspace session tokens for the entity
// management endpoints. The token correlates a caller with its table
// workspaces; it is not an authentication credential.
type SessionMiddleware struct {
	workspaceFlow businessflow.WorkspaceFlow
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(workspaceFlow businessflow.WorkspaceFlow) *SessionMiddleware {
	return &SessionMiddleware{workspaceFlow: workspaceFlow}
}

// RequireSession validates the session token and stores the live session in
// the request locals. Requests without a valid session are rejected so a
// stale dashboard tab cannot mutate another caller's workspaces.
func (m *SessionMiddleware) RequireSession() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractSessionToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Session token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_SESSION_TOKEN",
				},
			})
		}

		session, err := m.workspaceFlow.ResolveSession(token)
		if err != nil {
			code := "SESSION_INVALID"
			message := "Session is invalid"
			if be, ok := err.(*businessflow.BusinessError); ok {
				code = be.Code
				message = be.Message
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: code,
				},
			})
		}

		c.Locals(SessionLocalKey, session)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// extractSessionToken reads the token from the Authorization header or the
// X-Workspace-Token fallback used by the dashboard's fetch helpers.
func extractSessionToken(c fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Get("X-Workspace-Token")
}

// GetSessionFromContext extracts the resolved dashboard session from the
// request locals.
func GetSessionFromContext(c fiber.Ctx) (*businessflow.DashboardSession, bool) {
	session, ok := c.Locals(SessionLocalKey).(*businessflow.DashboardSession)
	return session, ok
}
