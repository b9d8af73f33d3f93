package server

import (
	"quill/internal/graph"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGraphQL executes one GraphQL request. Every outcome of a parsed
// request comes back as 200 with the errors array carrying the status of the
// failure; only an unreadable body is rejected at the HTTP level.
func (s *Server) HandleGraphQL(c *fiber.Ctx) error {
	var req graph.Request
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	resp := s.schema.Execute(c.UserContext(), req)
	return c.Status(fiber.StatusOK).JSON(resp)
}
