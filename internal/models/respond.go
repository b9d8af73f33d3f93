package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the client-visible error envelope for the REST surface.
type ErrorResponse struct {
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Data    []FieldError `json:"data,omitempty"`
}

// RespondWithError writes the standardized error envelope. Unknown error types
// are surfaced generically so internals never leak to the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	return c.Status(appErr.Status).JSON(ErrorResponse{
		Message: appErr.Message,
		Status:  appErr.Status,
		Data:    appErr.Data,
	})
}
