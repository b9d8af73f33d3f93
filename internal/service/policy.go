// Package service implements the application's use cases.
package service

import (
	"quill/internal/auth"
	"quill/internal/models"
)

// requireAuth is the authentication-required policy check. The identity
// middleware never rejects, so every use case that needs an identity fails
// closed here instead.
func requireAuth(v auth.Viewer) *models.AppError {
	if !v.Authenticated {
		return models.NewUnauthenticatedError("Not authenticated!")
	}
	return nil
}

// requireOwner is the ownership policy check for post mutations.
func requireOwner(v auth.Viewer, creatorID uint) *models.AppError {
	if v.UserID != creatorID {
		return models.NewForbiddenError("User not authorized!")
	}
	return nil
}
