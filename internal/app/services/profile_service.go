package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/validation"
)

// ProfileService handles student profile reads, edits and the wizard merge
type ProfileService struct {
	userRepo  repositories.IUserRepository
	dobWindow validation.DOBWindow
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repositories.IUserRepository, dobWindow validation.DOBWindow, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		userRepo:  userRepo,
		dobWindow: dobWindow,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProfile returns the caller's account joined with the student profile
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RoleType != models.RoleStudent {
		resp := dto.FromStudentProfile(user, nil)
		return &resp, nil
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromStudentProfile(user, profile)
	return &resp, nil
}

// UpdateProfile applies owner edits to personal fields
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.StudentProfileResponse, error) {
	if req.Mobile != nil && !validation.ValidMobile(*req.Mobile) {
		return nil, apperrors.NewValidationError("Mobile number must be exactly 10 digits")
	}

	if err := s.userRepo.UpdateNames(ctx, userID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Mobile != nil {
		profile.Mobile = req.Mobile
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.LinkedIn != nil {
		profile.LinkedIn = req.LinkedIn
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// ValidateStep checks one wizard section without persisting anything, so the
// client can gate its "next" button server-side.
func (s *ProfileService) ValidateStep(req *dto.ValidateStepRequest) error {
	switch req.Step {
	case dto.StepPersonal:
		_, err := s.validatePersonal(&req.CompleteProfileRequest)
		return err
	case dto.StepAcademic:
		return s.validateAcademic(&req.CompleteProfileRequest)
	case dto.StepEducation:
		return s.validateEducation(&req.CompleteProfileRequest)
	default:
		return apperrors.NewValidationError("Unknown wizard step: " + req.Step)
	}
}

// CompleteProfile validates every wizard section and persists the merged
// profile, marking the account profile-complete.
func (s *ProfileService) CompleteProfile(ctx context.Context, userID int64, req *dto.CompleteProfileRequest) (*dto.StudentProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only student accounts carry a profile")
	}

	dob, err := s.validatePersonal(req)
	if err != nil {
		return nil, err
	}
	if err := s.validateAcademic(req); err != nil {
		return nil, err
	}
	if err := s.validateEducation(req); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.DateOfBirth = &dob
	profile.Mobile = &req.Mobile
	profile.Address = &req.Address
	profile.City = &req.City
	profile.LinkedIn = req.LinkedIn
	profile.Course = req.Course
	profile.CollegeName = &req.CollegeName
	profile.PassingYear = &req.PassingYear
	profile.SscPercent = req.SscPercent
	profile.HscPercent = req.HscPercent
	profile.DegreePercent = req.DegreePercent
	profile.CGPA = req.CGPA
	profile.PreviousCourse = req.PreviousCourse
	profile.PreviousCollege = req.PreviousCollege
	profile.StartYear = req.StartYear
	profile.EndYear = req.EndYear

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	if err := s.userRepo.CompleteProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Student profile completed")
	return s.GetProfile(ctx, userID)
}

// validatePersonal checks the personal section and returns the parsed DOB
func (s *ProfileService) validatePersonal(req *dto.CompleteProfileRequest) (time.Time, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return time.Time{}, apperrors.NewValidationError("First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return time.Time{}, apperrors.NewValidationError("Last name is required")
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Date of birth must be a valid YYYY-MM-DD date")
	}
	if !s.dobWindow.Contains(dob) {
		return time.Time{}, apperrors.NewValidationError(
			fmt.Sprintf("Date of birth year must fall within %s", s.dobWindow))
	}

	if strings.TrimSpace(req.Address) == "" {
		return time.Time{}, apperrors.NewValidationError("Address is required")
	}
	if strings.TrimSpace(req.City) == "" {
		return time.Time{}, apperrors.NewValidationError("City is required")
	}
	if !validation.ValidMobile(req.Mobile) {
		return time.Time{}, apperrors.NewValidationError("Mobile number must be exactly 10 digits")
	}

	return dob, nil
}

// validateAcademic checks the academic section
func (s *ProfileService) validateAcademic(req *dto.CompleteProfileRequest) error {
	if strings.TrimSpace(req.CollegeName) == "" {
		return apperrors.NewValidationError("College name is required")
	}
	if !validation.ValidPassingYear(req.PassingYear, s.now()) {
		return apperrors.NewValidationError(
			fmt.Sprintf("Passing year must be a 4-digit year between %d and %d",
				validation.PassingYearMin, s.now().Year()+5))
	}

	for _, pc := range []struct {
		name  string
		value *float64
	}{
		{"SSC", req.SscPercent},
		{"HSC", req.HscPercent},
		{"Degree", req.DegreePercent},
	} {
		if pc.value != nil && !validation.ValidPercentage(*pc.value) {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s percentage must be between 0 and 100", pc.name))
		}
	}

	return nil
}

// validateEducation checks the education-history section. Every field here is
// optional; bounds apply only when a value was supplied.
func (s *ProfileService) validateEducation(req *dto.CompleteProfileRequest) error {
	if req.CGPA != nil && !validation.ValidCGPA(*req.CGPA) {
		return apperrors.NewValidationError("CGPA must be between 0 and 10")
	}
	if req.StartYear != nil && req.EndYear != nil && !validation.ValidYearRange(*req.StartYear, *req.EndYear) {
		return apperrors.NewValidationError("End year cannot be before start year")
	}
	return nil
}
