package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactHandler(contact *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// getAllMessages retrieves every contact message for the admin inbox
// @Summary Get contact messages
// @Tags Contact
// @Produce json
// @Success 200 {array} models.Contact "List of messages"
// @Router /contact [get]
func (h contactHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.contact.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// createMessage records an anonymous contact-form submission
// @Summary Submit contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Success 201 {object} models.Contact "Recorded message"
// @Router /contact [post]
func (h contactHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.ContactInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.contact.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, message)
	}
}

// updateMessageStatus marks a message read or unread
// @Summary Update message status
// @Tags Contact
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.Contact "Updated message"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Router /contact/{messageID}/status [put]
func (h contactHandler) updateMessageStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		var input services.ContactStatusInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.contact.SetStatus(r.Context(), messageID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// toggleMessageSave flips the saved flag that protects a message from deletion
// @Summary Toggle message save
// @Tags Contact
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.Contact "Updated message"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Router /contact/{messageID}/save [put]
func (h contactHandler) toggleMessageSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		var input services.ContactSaveInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.contact.ToggleSave(r.Context(), messageID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// deleteMessage deletes a message unless it has been saved
// @Summary Delete contact message
// @Tags Contact
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Message is saved"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Router /contact/{messageID} [delete]
func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		if err := h.contact.Remove(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "contact message deleted successfully",
		})
	}
}
