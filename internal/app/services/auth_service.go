package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/auth"
	"github.com/campusplace/backend/internal/pkg/email"
	"github.com/campusplace/backend/internal/pkg/validation"
)

const resetTokenTTL = time.Hour

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	resetRepo repositories.IPasswordResetTokenRepository
	jwt       *auth.JWTService
	mailer    email.EmailService
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	jwt *auth.JWTService,
	mailer email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		resetRepo: resetRepo,
		jwt:       jwt,
		mailer:    mailer,
		logger:    logger,
	}
}

// validateRegistration runs the sign-up checks in order, before any
// store or credential work.
func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return apperrors.NewValidationError("First name is required")
	}
	if !validation.ValidName(req.FirstName) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"First name must be between %d and %d characters long",
			validation.NameMinLength, validation.NameMaxLength))
	}
	if strings.TrimSpace(req.LastName) == "" {
		return apperrors.NewValidationError("Last name is required")
	}
	if !validation.ValidName(req.LastName) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"Last name must be between %d and %d characters long",
			validation.NameMinLength, validation.NameMaxLength))
	}
	if !validation.ValidEnrollmentNo(req.EnrollmentNo) {
		return apperrors.NewValidationError(
			fmt.Sprintf("Enrollment number must be exactly %d characters long", validation.EnrollmentNoLength))
	}
	if !validation.CompiledPatterns.Email.MatchString(req.Email) {
		return apperrors.NewValidationError("Email address is not valid")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long", validation.PasswordMinLength))
	}
	return nil
}

// Register creates a student account with a profile skeleton and signs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashedPassword,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  models.RoleStudent,
	}

	if err := s.userRepo.CreateStudentWithProfile(ctx, user, req.EnrollmentNo); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Student registered")

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a user. Unknown email and wrong password collapse into
// one error so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return s.generateAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found for token: %w", err)
	}

	// Revoke before reissue so a leaked token cannot be replayed.
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// ForgotPassword issues a reset token and emails a reset link. The caller
// always gets success so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, token); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token, stores the new password and revokes
// every live refresh token for the account.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long", validation.PasswordMinLength))
	}

	userID, expiresAt, used, err := s.resetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return err
	}
	if used {
		return apperrors.ErrResetTokenUsed
	}
	if expiresAt.Before(time.Now()) {
		return apperrors.ErrResetTokenInvalid
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	if err := s.resetRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh tokens after password reset")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

// generateAuthResponse creates the token pair and persists the refresh token
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			RefreshToken:          refreshToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
