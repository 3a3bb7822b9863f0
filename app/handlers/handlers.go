// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/services"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
)

var alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z\x{0600}-\x{06FF}][a-zA-Z\x{0600}-\x{06FF} .'-]*$`)

// newValidator builds the validator shared by all handlers with the custom
// tags the request DTOs use.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		return alphaSpaceRegex.MatchString(value)
	})
	return v
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "alpha_space":
		return err.Field() + " must contain only letters and spaces"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	case "e164":
		return "Phone number must be in international format"
	default:
		return err.Field() + " is invalid"
	}
}

func validationErrorMessages(err error) []string {
	var messages []string
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			messages = append(messages, getValidationErrorMessage(fe))
		}
		return messages
	}
	return []string{err.Error()}
}

// flowErrorResponse maps flow errors to HTTP statuses. Upstream failures
// keep the backend's human-readable message; transient ones answer 502 so
// the dashboard can offer a retry.
func flowErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		status := statusForBusinessCode(be.Code)
		if status == 0 {
			status = upstreamStatus(be)
		}
		return c.Status(status).JSON(dto.APIResponse{
			Success: false,
			Message: be.Message,
			Error: dto.ErrorDetail{
				Code: be.Code,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
		Success: false,
		Message: fallbackMessage,
		Error: dto.ErrorDetail{
			Code: fallbackCode,
		},
	})
}

func statusForBusinessCode(code string) int {
	switch code {
	case "TUTOR_NOT_FOUND", "COURSE_NOT_FOUND", "USER_NOT_FOUND", "MODAL_RECORD_MISSING":
		return fiber.StatusNotFound
	case "SESSION_NOT_FOUND", "SESSION_TOKEN_EXPIRED", "SESSION_TOKEN_INVALID":
		return fiber.StatusUnauthorized
	case "INVALID_ENTITY_KIND", "INVALID_MODAL_KIND", "MODAL_RECORD_REQUIRED",
		"SELECTION_EMPTY", "INVALID_SORT_KEY", "INVALID_SORT_DIRECTION", "INVALID_PAGE":
		return fiber.StatusBadRequest
	case "SESSION_TOKEN_FAILED", "PREFERENCES_READ_FAILED", "PREFERENCES_WRITE_FAILED":
		return fiber.StatusInternalServerError
	}
	return 0
}

// upstreamStatus picks a status for a backend failure: client-side upstream
// statuses pass through, everything else is a bad gateway.
func upstreamStatus(err error) int {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		if ue.Status >= 400 && ue.Status < 500 {
			return ue.Status
		}
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
