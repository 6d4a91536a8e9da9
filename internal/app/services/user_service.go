package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/auth"
	"github.com/campusplace/backend/internal/pkg/email"
	"github.com/campusplace/backend/internal/pkg/helpers"
)

// UserService handles the student roster and staff account management
type UserService struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	mailer    email.EmailService
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	mailer email.EmailService,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// ListStudents returns the paginated student roster with profiles
func (s *UserService) ListStudents(ctx context.Context, page, size int) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	profiles, total, err := s.userRepo.ListStudents(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.FromStudentProfile(p.User, p))
	}

	return &dto.StudentListResponse{
		Students:   items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// SetStudentStatus flips a student account's enabled flag
func (s *UserService) SetStudentStatus(ctx context.Context, studentID int64, enabled bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.ErrStudentNotFound
	}

	if err := s.userRepo.SetEnabled(ctx, studentID, enabled); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Bool("enabled", enabled).
		Msg("Student account status changed")

	// Best effort: the status change stands even if the email never lands.
	if enabled && !user.IsEnabled {
		if err := s.mailer.SendAccountEnabledEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to send account enabled email")
		}
	}

	user.IsEnabled = enabled
	resp := dto.FromUser(user)
	return &resp, nil
}

// CreateStaff creates a placement office account, enabled immediately
func (s *UserService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.UserResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Password:         hashedPassword,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		RoleType:         models.RolePTO,
		IsEnabled:        true,
		ProfileCompleted: true,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Staff account created")

	resp := dto.FromUser(user)
	return &resp, nil
}

// ListStaff returns all placement office accounts
func (s *UserService) ListStaff(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListByRole(ctx, models.RolePTO)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.FromUser(u))
	}
	return items, nil
}

// DeleteStaff removes a placement office account and revokes its sessions
func (s *UserService) DeleteStaff(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.RoleType != models.RolePTO {
		return apperrors.ErrUserNotFound
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke staff tokens before delete")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Staff account deleted")
	return nil
}
