package server

import (
	"errors"
	"io"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage stores a multipart image for a later createPost or updatePost
// call. A request without a file (or with one of an unsupported type) is not
// an error: the client simply gets no stored path back.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	viewer := middleware.ViewerFromCtx(c)
	if !viewer.Authenticated {
		return models.RespondWithError(c, models.NewUnauthenticatedError("Not authenticated!"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No file provided",
		})
	}

	// The client sends the post's previous path when replacing an image.
	if oldPath := c.FormValue("oldPath"); oldPath != "" {
		s.media.Clear(oldPath)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	path, err := s.media.Store(fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedType) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message": "No file provided",
			})
		}
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "File Stored",
		"filePath": path,
	})
}
