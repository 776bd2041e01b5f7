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

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	media     *services.MediaService
}

func newMediaHandler(media *services.MediaService) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		media:     media,
	}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// getAllMedia retrieves all media items, newest first
// @Summary Get all media
// @Tags Media
// @Produce json
// @Success 200 {array} models.Media "List of media items"
// @Router /media [get]
func (h mediaHandler) getAllMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.media.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, items)
	}
}

// createMedia creates a new media item
// @Summary Create media
// @Tags Media
// @Accept json
// @Produce json
// @Success 201 {object} models.Media "Created media item"
// @Router /media [post]
func (h mediaHandler) createMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.MediaInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.media.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, item)
	}
}

// updateMedia updates an existing media item
// @Summary Update media
// @Tags Media
// @Accept json
// @Produce json
// @Param mediaID path string true "Media ID" format(uuid)
// @Success 200 {object} models.Media "Updated media item"
// @Failure 404 {object} ErrorResponse "Media item not found"
// @Router /media/{mediaID} [put]
func (h mediaHandler) updateMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid mediaID"))
			return
		}

		var input services.MediaInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.media.Update(r.Context(), mediaID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, item)
	}
}

// deleteMedia deletes a media item by ID
// @Summary Delete media
// @Tags Media
// @Produce json
// @Param mediaID path string true "Media ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Media item not found"
// @Router /media/{mediaID} [delete]
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid mediaID"))
			return
		}

		if err := h.media.Remove(r.Context(), mediaID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "media deleted successfully",
		})
	}
}

// createUploadURL issues a presigned URL for uploading a file directly to
// object storage
// @Summary Presign media upload
// @Tags Media
// @Accept json
// @Produce json
// @Success 201 {object} services.UploadTarget "Presigned upload target"
// @Failure 503 {object} ErrorResponse "Uploads not configured"
// @Router /media/upload-url [post]
func (h mediaHandler) createUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadURLRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		target, err := h.media.PresignUpload(r.Context(), req.Filename, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, target)
	}
}
