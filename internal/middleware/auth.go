// Package middleware provides identity, logging and rate limiting middleware.
package middleware

import (
	"strings"

	"quill/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by Identify.
const (
	LocalIsAuth = "isAuth"
	LocalUserID = "userID"
)

// Identify resolves an optional identity from the Authorization header and
// annotates the request. It never rejects: a missing, malformed or invalid
// token simply leaves the request unauthenticated, and each use case decides
// whether that is acceptable.
func Identify(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalIsAuth, false)

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return c.Next()
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Next()
		}

		c.Locals(LocalIsAuth, true)
		c.Locals(LocalUserID, identity.UserID)

		ctx := auth.WithViewer(c.UserContext(), auth.Viewer{Identity: identity, Authenticated: true})
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// ViewerFromCtx rebuilds the request's viewer from Fiber locals. Handlers that
// bypass the user context (multipart upload) use this.
func ViewerFromCtx(c *fiber.Ctx) auth.Viewer {
	isAuth, _ := c.Locals(LocalIsAuth).(bool)
	if !isAuth {
		return auth.Viewer{}
	}
	userID, _ := c.Locals(LocalUserID).(uint)
	return auth.Viewer{Identity: auth.Identity{UserID: userID}, Authenticated: true}
}
