package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.AuthService

	// exposeResetToken returns reset tokens in the forgot-password
	// response. Development convenience only; production delivers them
	// out of band.
	exposeResetToken bool
}

func newAuthHandler(auth *services.AuthService, exposeResetToken bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		auth:             auth,
		exposeResetToken: exposeResetToken,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerAdminRequest struct {
	SetupToken string `json:"setupToken"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// login exchanges credentials for an access token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "Token and account"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// me returns the authenticated principal
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} services.Principal
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}
		h.responder.WriteJSON(w, principal)
	}
}

// logout acknowledges a client-side token discard. Tokens are stateless, so
// there is nothing to revoke server-side.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{"message": "logged out"})
	}
}

// registerAdmin bootstraps the single admin account
// @Summary Register admin
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 403 {object} ErrorResponse "Invalid setup token"
// @Failure 409 {object} ErrorResponse "Admin already exists"
// @Router /auth/register [post]
func (h authHandler) registerAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerAdminRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.auth.RegisterAdmin(r.Context(), req.SetupToken, req.Name, req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, user)
	}
}

// changePassword rotates the authenticated account's password
func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		var req changePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.auth.ChangePassword(r.Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "password changed"})
	}
}

// forgotPassword issues a reset token. Outside dev mode the response is
// identical whether or not the account exists; the token is surfaced through
// the logs for the operator to deliver out of band.
func (h authHandler) forgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.auth.ForgotPassword(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if token != "" {
			h.logger.Info().Str("email", req.Email).Str("resetToken", token).Msg("password reset token issued")
		}

		response := map[string]string{
			"message": "if the account exists, a reset token has been issued",
		}
		if h.exposeResetToken && token != "" {
			response["resetToken"] = token
		}
		h.responder.WriteJSON(w, response)
	}
}

// resetPassword consumes a reset token and sets a new password
func (h authHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "password reset"})
	}
}
