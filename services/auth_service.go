package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL = 7 * 24 * time.Hour
	bcryptCost     = 12

	purposeReset = "reset"
)

// Principal is the authenticated identity attached to a request. It is
// passed explicitly into service calls rather than read from ambient state.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type tokenClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies stateless signed credentials. There is no
// revocation list: logout is a client-side discard and a leaked token stays
// valid until it expires.
type AuthService struct {
	users          *database.UserRepo
	secret         []byte
	setupToken     string
	minPasswordLen int
	resetTokenTTL  time.Duration
	logger         zerolog.Logger
}

func NewAuthService(users *database.UserRepo, secret, setupToken string, minPasswordLen int, resetTokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:          users,
		secret:         []byte(secret),
		setupToken:     setupToken,
		minPasswordLen: minPasswordLen,
		resetTokenTTL:  resetTokenTTL,
		logger:         log.With().Str("serviceName", "authService").Logger(),
	}
}

func (s *AuthService) signToken(user *models.User, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email:   user.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if purpose == "" {
		claims.Role = user.Role
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parseToken(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}
	return claims, nil
}

// dummyHash is compared against on the unknown-account path so a login miss
// costs the same bcrypt work as a wrong password and the two failures cannot
// be told apart by response timing.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("login-timing-placeholder"), bcryptCost)

// Login verifies credentials and issues a 7-day access token. Failures are
// reported identically whether the account is missing or the password wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, errs.NewValidationError(map[string]string{"email": "required", "password": "required"})
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, errs.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.NewInvalidCredentialsError()
	}

	token, err := s.signToken(user, "", accessTokenTTL)
	if err != nil {
		return "", nil, errs.NewInternalErrorWithCause("failed to sign token", err)
	}

	s.logger.Info().Str("email", email).Msg("admin logged in")
	return token, user, nil
}

// Verify validates an access token and yields the embedded principal.
func (s *AuthService) Verify(token string) (*Principal, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		// Reset tokens are single-purpose and do not grant API access.
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}

	return &Principal{ID: id, Email: claims.Email, Role: claims.Role}, nil
}

// ChangePassword re-hashes and persists a new password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, principal Principal, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return errs.NewValidationError(map[string]string{"currentPassword": "required", "newPassword": "required"})
	}
	if len(newPassword) < s.minPasswordLen {
		return errs.NewValidationError(map[string]string{
			"newPassword": fmt.Sprintf("must be at least %d characters", s.minPasswordLen),
		})
	}

	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return errs.NewNotFoundError("user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errs.NewUnauthorizedError("invalid current password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}
	return nil
}

// ForgotPassword issues a short-lived reset token. To avoid revealing
// whether the account exists, an unknown email yields an empty token and
// no error.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errs.NewValidationError(map[string]string{"email": "required"})
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return "", nil
	}

	token, err := s.signToken(user, purposeReset, s.resetTokenTTL)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to sign token", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return errs.NewValidationError(map[string]string{"token": "required", "newPassword": "required"})
	}
	if len(newPassword) < s.minPasswordLen {
		return errs.NewValidationError(map[string]string{
			"newPassword": fmt.Sprintf("must be at least %d characters", s.minPasswordLen),
		})
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	if claims.Purpose != purposeReset {
		return errs.NewUnauthorizedError("invalid reset token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return errs.NewUnauthorizedError("invalid reset token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return errs.NewNotFoundError("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("password reset")
	return nil
}

// RegisterAdmin is the one-time bootstrap: it only succeeds while no
// account exists and the server-configured setup token matches.
func (s *AuthService) RegisterAdmin(ctx context.Context, setupToken, name, email, password string) (*models.User, error) {
	if s.setupToken == "" {
		return nil, errs.NewBadRequestError("admin setup token not configured on server")
	}
	if setupToken != s.setupToken {
		return nil, errs.NewForbiddenError("invalid setup token")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("count", "users", err)
	}
	if count > 0 {
		return nil, errs.NewConflictError("admin already exists")
	}

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "required"
	}
	if email == "" {
		fields["email"] = "required"
	}
	if len(password) < s.minPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters", s.minPasswordLen)
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.users.Add(ctx, user); err != nil {
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	s.logger.Info().Str("email", email).Msg("admin account bootstrapped")
	return user, nil
}
