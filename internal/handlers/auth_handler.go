package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ross2p/ems-app/internal/dto"
	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/repositories"
	"github.com/ross2p/ems-app/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userRepo        repositories.UserRepositoryInterface
	tokenRepo       repositories.RefreshTokenRepositoryInterface
	tokenService    services.TokenServiceInterface
	passwordService services.PasswordServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.RefreshTokenRepositoryInterface,
	tokenService services.TokenServiceInterface,
	passwordService services.PasswordServiceInterface,
) *AuthHandler {
	return &AuthHandler{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	passwordHash, err := h.passwordService.HashPassword(req.Password)
	if err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, err.Error())
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := h.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return SendError(c, apierrors.UserAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return h.respondWithTokens(c, http.StatusCreated, "User registered successfully", user)
}

// Login handles user authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, apierrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	if !h.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		return SendError(c, apierrors.AuthInvalidCredentials)
	}

	return h.respondWithTokens(c, http.StatusOK, "Login successful", user)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshTokenRequest

	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	claims, err := h.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return SendError(c, apierrors.AuthInvalidRefreshToken)
	}

	record, err := h.tokenRepo.GetByTokenHash(hashToken(req.RefreshToken))
	if err != nil || !record.IsValid() {
		return SendError(c, apierrors.AuthInvalidRefreshToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return SendError(c, apierrors.AuthInvalidRefreshToken)
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, apierrors.AuthInvalidRefreshToken)
		}
		return SendSystemError(c, err)
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(user)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Token refreshed successfully", dto.RefreshResponse{
		AccessToken: accessToken,
	})
}

// Logout revokes every refresh token of the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	if err := h.tokenRepo.RevokeAllForUser(userID); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) respondWithTokens(c echo.Context, status int, message string, user *models.User) error {
	accessToken, _, err := h.tokenService.GenerateAccessToken(user)
	if err != nil {
		return SendSystemError(c, err)
	}

	refreshToken, expiresAt, err := h.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return SendSystemError(c, err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: expiresAt,
	}
	if err := h.tokenRepo.Create(record); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, status, message, dto.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// hashToken returns the hex SHA-256 digest stored in place of the raw token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
