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

type experienceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	experiences *services.ExperienceService
}

func newExperienceHandler(experiences *services.ExperienceService) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		experiences: experiences,
	}
}

// getAllExperiences retrieves all experience entries, most recent start first
// @Summary Get all experiences
// @Tags Experience
// @Produce json
// @Success 200 {array} models.Experience "List of experiences"
// @Router /experience [get]
func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experiences.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, experiences)
	}
}

// createExperience creates a new experience entry
// @Summary Create experience
// @Tags Experience
// @Accept json
// @Produce json
// @Success 201 {object} models.Experience "Created experience"
// @Router /experience [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.ExperienceInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.experiences.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, experience)
	}
}

// updateExperience updates an existing experience entry
// @Summary Update experience
// @Tags Experience
// @Accept json
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} models.Experience "Updated experience"
// @Failure 404 {object} ErrorResponse "Experience not found"
// @Router /experience/{experienceID} [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := uuid.Parse(chi.URLParam(r, "experienceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid experienceID"))
			return
		}

		var input services.ExperienceInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.experiences.Update(r.Context(), experienceID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, experience)
	}
}

// deleteExperience deletes an experience entry by ID
// @Summary Delete experience
// @Tags Experience
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Experience not found"
// @Router /experience/{experienceID} [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := uuid.Parse(chi.URLParam(r, "experienceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid experienceID"))
			return
		}

		if err := h.experiences.Remove(r.Context(), experienceID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "experience deleted successfully",
		})
	}
}
