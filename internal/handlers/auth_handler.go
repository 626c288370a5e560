package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
	"luxetickets/models"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register - create an account and sign it in
func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var in services.RegisterInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.auth.Register(e.Request.Context(), in)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, session)
}

// Login - exchange email and password for a session token
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var in services.LoginInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.auth.Login(e.Request.Context(), in)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, session)
}

// Logout - end the current session. Always succeeds.
func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	if err := h.auth.Logout(e.Request.Context(), bearerToken(e)); err != nil {
		return apiError(err)
	}
	return e.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}
	return e.JSON(http.StatusOK, user)
}

// UpdateProfile - change name or phone. Email is fixed at registration.
func (h *AuthHandler) UpdateProfile(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	var update models.ProfileUpdate
	if err := e.BindBody(&update); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	updated, err := h.auth.UpdateProfile(e.Request.Context(), user.ID, update)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, updated)
}
