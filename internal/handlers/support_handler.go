package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
	"luxetickets/models"
)

type SupportHandler struct {
	support *services.SupportService
}

func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// SubmitContact - contact form, open to anonymous visitors
func (h *SupportHandler) SubmitContact(e *core.RequestEvent) error {
	var in services.ContactInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	submission, err := h.support.SubmitContact(e.Request.Context(), in)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, submission)
}

// SubmitFeedback - rating and comment. Signed-in users get their
// account email and name attached.
func (h *SupportHandler) SubmitFeedback(e *core.RequestEvent) error {
	var in services.FeedbackInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ctx := e.Request.Context()
	var author *models.User
	if user, ok := UserFrom(ctx); ok {
		author = &user
	}

	submission, err := h.support.SubmitFeedback(ctx, author, in)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, submission)
}
