package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jared-cannon/app-registry/internal/models"
)

// ErrorResponse represents a sanitized error response for API clients
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// sanitizeError returns a user-friendly error message and logs the detailed error
func sanitizeError(err error, userMessage string) string {
	if err == nil {
		return userMessage
	}

	// Log the detailed error server-side for debugging
	log.Printf("[API Error] %s: %v", userMessage, err)

	errStr := err.Error()

	if strings.Contains(errStr, "failed to write slot") || strings.Contains(errStr, "failed to save") {
		return "Failed to save application"
	}
	if strings.Contains(errStr, "keyring") || strings.Contains(errStr, "keychain") {
		return "Local storage is unavailable"
	}
	if strings.Contains(errStr, "failed to render") {
		return "Failed to render page"
	}

	return userMessage
}

// HandleError is a helper to return sanitized error responses
func HandleError(c *fiber.Ctx, statusCode int, err error, defaultMessage string) error {
	// Structured errors carry their own client-safe message
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Err != nil {
			log.Printf("[API Error] %s: %v", apiErr.Code, apiErr.Err)
		}
		return c.Status(statusCode).JSON(ErrorResponse{
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		})
	}

	sanitized := sanitizeError(err, defaultMessage)
	return c.Status(statusCode).JSON(ErrorResponse{
		Error: sanitized,
	})
}

// HandlePageError is HandleError for HTML routes
func HandlePageError(c *fiber.Ctx, statusCode int, err error, defaultMessage string) error {
	var apiErr *models.APIError
	var msg string
	if errors.As(err, &apiErr) {
		log.Printf("[API Error] %v", apiErr)
		msg = apiErr.Message
	} else {
		msg = sanitizeError(err, defaultMessage)
	}
	return c.Status(statusCode).SendString(msg)
}
