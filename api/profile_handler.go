package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profile   *services.ProfileService
}

func newProfileHandler(profile *services.ProfileService) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profile:   profile,
	}
}

// getProfile retrieves the singleton profile document
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile "Profile, null when not yet created"
// @Router /profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profile.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile merges the supplied fields into the singleton profile,
// creating it on first write
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile "Updated profile"
// @Router /profile [put]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.ProfileInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profile.Update(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
