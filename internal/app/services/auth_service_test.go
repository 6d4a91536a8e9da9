package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/auth"
)

type authFixture struct {
	service   *AuthService
	userRepo  *fakeUserRepo
	tokenRepo *fakeTokenRepo
	resetRepo *fakeResetTokenRepo
	mailer    *fakeMailer
}

func newAuthFixture() *authFixture {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	resetRepo := newFakeResetTokenRepo()
	mailer := &fakeMailer{}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusplace-test",
	})

	return &authFixture{
		service:   NewAuthService(userRepo, tokenRepo, resetRepo, jwtService, mailer, zerolog.Nop()),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
	}
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName:    "Aarav",
		LastName:     "Shah",
		Email:        "aarav@college.edu",
		EnrollmentNo: "2021000042",
		Password:     "secret123",
	}
}

func TestRegister_Success(t *testing.T) {
	fx := newAuthFixture()

	resp, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "Aarav", resp.User.FirstName)
	assert.Equal(t, string(models.RoleStudent), resp.User.Role)
	assert.False(t, resp.User.IsEnabled)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	// The refresh token must be persisted server-side.
	userID, err := fx.tokenRepo.GetTokenUser(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	// The profile skeleton carries the enrollment number.
	profile, err := fx.userRepo.GetProfileByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "2021000042", profile.EnrollmentNo)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	fx := newAuthFixture()

	req := validRegisterRequest()
	req.Email = "  Aarav@College.EDU "

	resp, err := fx.service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "aarav@college.edu", resp.User.Email)
}

func TestRegister_ValidationOrder(t *testing.T) {
	fx := newAuthFixture()

	tests := []struct {
		name    string
		mutate  func(req *dto.RegisterRequest)
		message string
	}{
		{
			name:    "missing first name",
			mutate:  func(req *dto.RegisterRequest) { req.FirstName = "  " },
			message: "First name is required",
		},
		{
			name:    "single-letter first name",
			mutate:  func(req *dto.RegisterRequest) { req.FirstName = "A" },
			message: "First name must be between 2 and 100 characters long",
		},
		{
			name:    "missing last name",
			mutate:  func(req *dto.RegisterRequest) { req.LastName = "" },
			message: "Last name is required",
		},
		{
			name:    "overlong last name",
			mutate:  func(req *dto.RegisterRequest) { req.LastName = strings.Repeat("a", 101) },
			message: "Last name must be between 2 and 100 characters long",
		},
		{
			name:    "short enrollment number",
			mutate:  func(req *dto.RegisterRequest) { req.EnrollmentNo = "12345" },
			message: "Enrollment number must be exactly 10 characters long",
		},
		{
			name:    "bad email",
			mutate:  func(req *dto.RegisterRequest) { req.Email = "not-an-email" },
			message: "Email address is not valid",
		},
		{
			name:    "short password",
			mutate:  func(req *dto.RegisterRequest) { req.Password = "abc" },
			message: "Password must be at least 6 characters long",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(req)

			_, err := fx.service.Register(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	dup := validRegisterRequest()
	dup.EnrollmentNo = "2021000043"
	_, err = fx.service.Register(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_DuplicateEnrollmentNo(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	dup := validRegisterRequest()
	dup.Email = "other@college.edu"
	_, err = fx.service.Register(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNoExists)
}

func TestLogin_Success(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := fx.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "aarav@college.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, 1, fx.userRepo.lastLogins[resp.User.ID])
}

func TestLogin_BadCredentialsCollapse(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	_, err = fx.service.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@college.edu", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = fx.service.Login(context.Background(), &dto.LoginRequest{
		Email: "aarav@college.edu", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	fx := newAuthFixture()
	registered, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	refreshed, err := fx.service.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token.RefreshToken, refreshed.Token.RefreshToken)

	// The original token is revoked and cannot be replayed.
	_, err = fx.service.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshToken_Unknown(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.service.RefreshToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = fx.service.RefreshToken(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLogout_RevokesToken(t *testing.T) {
	fx := newAuthFixture()
	registered, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), registered.Token.RefreshToken))

	_, err = fx.service.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestForgotPassword_UnknownEmailSilently(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.ForgotPassword(context.Background(), "nobody@college.edu")
	assert.NoError(t, err)
	assert.Empty(t, fx.mailer.resetEmails)
}

func TestForgotPassword_SendsResetEmail(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, fx.service.ForgotPassword(context.Background(), "Aarav@College.edu"))
	assert.Equal(t, []string{"aarav@college.edu"}, fx.mailer.resetEmails)
	assert.Len(t, fx.resetRepo.tokens, 1)
}

func TestResetPassword_FullFlow(t *testing.T) {
	fx := newAuthFixture()
	registered, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, fx.service.ForgotPassword(context.Background(), "aarav@college.edu"))

	var token string
	for tok := range fx.resetRepo.tokens {
		token = tok
	}

	require.NoError(t, fx.service.ResetPassword(context.Background(), token, "newsecret"))

	// Old password no longer works, the new one does.
	_, err = fx.service.Login(context.Background(), &dto.LoginRequest{
		Email: "aarav@college.edu", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = fx.service.Login(context.Background(), &dto.LoginRequest{
		Email: "aarav@college.edu", Password: "newsecret",
	})
	assert.NoError(t, err)

	// Existing refresh tokens are revoked.
	_, err = fx.service.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The token is single-use.
	err = fx.service.ResetPassword(context.Background(), token, "anothersecret")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenUsed)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.ResetPassword(context.Background(), "bogus", "newsecret")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	fx.resetRepo.tokens["stale"] = &storedResetToken{userID: 1, expiresAt: time.Now().Add(-time.Minute)}

	err = fx.service.ResetPassword(context.Background(), "stale", "newsecret")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestResetPassword_TooShort(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.ResetPassword(context.Background(), "whatever", "abc")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
