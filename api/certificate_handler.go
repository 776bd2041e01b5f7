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

type certificateHandler struct {
	responder Responder
	logger    zerolog.Logger
	certs     *services.CertificateService
}

func newCertificateHandler(certs *services.CertificateService) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder: NewResponder(logger),
		logger:    logger,
		certs:     certs,
	}
}

// getAllCertificates retrieves all certificates, most recently issued first
// @Summary Get all certificates
// @Tags Certificates
// @Produce json
// @Success 200 {array} models.Certificate "List of certificates"
// @Router /certificates [get]
func (h certificateHandler) getAllCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificates, err := h.certs.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, certificates)
	}
}

// createCertificate creates a new certificate
// @Summary Create certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Success 201 {object} models.Certificate "Created certificate"
// @Router /certificates [post]
func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CertificateInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.certs.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, certificate)
	}
}

// updateCertificate updates an existing certificate
// @Summary Update certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param certificateID path string true "Certificate ID" format(uuid)
// @Success 200 {object} models.Certificate "Updated certificate"
// @Failure 404 {object} ErrorResponse "Certificate not found"
// @Router /certificates/{certificateID} [put]
func (h certificateHandler) updateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid certificateID"))
			return
		}

		var input services.CertificateInput
		if err := decodeJSON(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.certs.Update(r.Context(), certificateID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, certificate)
	}
}

// deleteCertificate deletes a certificate by ID
// @Summary Delete certificate
// @Tags Certificates
// @Produce json
// @Param certificateID path string true "Certificate ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Certificate not found"
// @Router /certificates/{certificateID} [delete]
func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid certificateID"))
			return
		}

		if err := h.certs.Remove(r.Context(), certificateID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "certificate deleted successfully",
		})
	}
}
