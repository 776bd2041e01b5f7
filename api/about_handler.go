package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type aboutHandler struct {
	responder Responder
	logger    zerolog.Logger
	about     *services.AboutService
}

func newAboutHandler(about *services.AboutService) aboutHandler {
	logger := log.With().Str("handlerName", "aboutHandler").Logger()

	return aboutHandler{
		responder: NewResponder(logger),
		logger:    logger,
		about:     about,
	}
}

// getAbout retrieves the singleton about document
// @Summary Get about
// @Tags About
// @Produce json
// @Success 200 {object} models.About "About document, null when not yet created"
// @Router /about [get]
func (h aboutHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		about, err := h.about.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, about)
	}
}

// updateAbout merges the supplied fields into the singleton about document,
// creating it on first write
// @Summary Update about
// @Tags About
// @Accept json
// @Produce json
// @Success 200 {object} models.About "Updated about document"
// @Router /about [put]
func (h aboutHandler) updateAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.AboutInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		about, err := h.about.Update(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, about)
	}
}
