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

type learningHandler struct {
	responder Responder
	logger    zerolog.Logger
	learning  *services.LearningService
}

func newLearningHandler(learning *services.LearningService) learningHandler {
	logger := log.With().Str("handlerName", "learningHandler").Logger()

	return learningHandler{
		responder: NewResponder(logger),
		logger:    logger,
		learning:  learning,
	}
}

// getAllLearning retrieves all learning items, newest first
// @Summary Get all learning items
// @Tags Learning
// @Produce json
// @Success 200 {array} models.Learning "List of learning items"
// @Router /learning [get]
func (h learningHandler) getAllLearning() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.learning.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, items)
	}
}

// createLearning creates a new learning item
// @Summary Create learning item
// @Tags Learning
// @Accept json
// @Produce json
// @Success 201 {object} models.Learning "Created learning item"
// @Router /learning [post]
func (h learningHandler) createLearning() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.LearningInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.learning.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, item)
	}
}

// updateLearning updates an existing learning item
// @Summary Update learning item
// @Tags Learning
// @Accept json
// @Produce json
// @Param learningID path string true "Learning ID" format(uuid)
// @Success 200 {object} models.Learning "Updated learning item"
// @Failure 404 {object} ErrorResponse "Learning item not found"
// @Router /learning/{learningID} [put]
func (h learningHandler) updateLearning() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		learningID, err := uuid.Parse(chi.URLParam(r, "learningID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid learningID"))
			return
		}

		var input services.LearningInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.learning.Update(r.Context(), learningID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, item)
	}
}

// deleteLearning deletes a learning item by ID
// @Summary Delete learning item
// @Tags Learning
// @Produce json
// @Param learningID path string true "Learning ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Learning item not found"
// @Router /learning/{learningID} [delete]
func (h learningHandler) deleteLearning() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		learningID, err := uuid.Parse(chi.URLParam(r, "learningID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid learningID"))
			return
		}

		if err := h.learning.Remove(r.Context(), learningID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "learning item deleted successfully",
		})
	}
}
