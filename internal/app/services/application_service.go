package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

// ApplicationService handles drive applications and selections
type ApplicationService struct {
	appRepo   repositories.IApplicationRepository
	driveRepo repositories.IDriveRepository
	userRepo  repositories.IUserRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	driveRepo repositories.IDriveRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:   appRepo,
		driveRepo: driveRepo,
		userRepo:  userRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// checkThresholds compares the student's recorded percents against the
// drive's stated minimums. A failure names the unmet threshold.
func checkThresholds(profile *models.StudentProfile, drive *models.Drive) error {
	for _, t := range []struct {
		name     string
		actual   *float64
		required *float64
	}{
		{"SSC", profile.SscPercent, drive.MinSscPercent},
		{"HSC", profile.HscPercent, drive.MinHscPercent},
		{"Degree", profile.DegreePercent, drive.MinDegreePercent},
	} {
		if t.required == nil {
			continue
		}
		if t.actual == nil || *t.actual < *t.required {
			actual := 0.0
			if t.actual != nil {
				actual = *t.actual
			}
			return apperrors.NewCustomError(apperrors.ErrBelowCutoff, fmt.Sprintf(
				"%s percentage %.1f is below the required %.1f", t.name, actual, *t.required))
		}
	}
	return nil
}

// Apply records a student's application to a drive. Guards run in order:
// drive exists and is open, no prior application, thresholds met. The write
// itself is a snapshot insert plus ledger append in one transaction.
func (s *ApplicationService) Apply(ctx context.Context, studentID, driveID int64) (*dto.ApplicationResponse, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if drive.Expired(s.now()) {
		return nil, apperrors.ErrDriveExpired
	}

	applied, err := s.appRepo.HasApplied(ctx, studentID, driveID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	user, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	profile, err := s.userRepo.GetProfileByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := checkThresholds(profile, drive); err != nil {
		return nil, err
	}

	app := &models.Application{
		DriveID:       drive.ID,
		StudentID:     studentID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		EnrollmentNo:  profile.EnrollmentNo,
		SscPercent:    profile.SscPercent,
		HscPercent:    profile.HscPercent,
		DegreePercent: profile.DegreePercent,
		DriveTitle:    drive.Title,
		CompanyName:   drive.CompanyName,
	}

	if err := s.appRepo.CreateWithLedgerAppend(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("driveID", driveID).
		Msg("Application recorded")

	resp := dto.FromApplication(app)
	return &resp, nil
}

// ListByStudent returns the caller's applications
func (s *ApplicationService) ListByStudent(ctx context.Context, studentID int64) (*dto.ApplicationListResponse, error) {
	apps, err := s.appRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toApplicationList(apps), nil
}

// ListByDrive returns all applicants for one drive
func (s *ApplicationService) ListByDrive(ctx context.Context, driveID int64) (*dto.ApplicationListResponse, error) {
	apps, err := s.appRepo.ListByDrive(ctx, driveID)
	if err != nil {
		return nil, err
	}
	return toApplicationList(apps), nil
}

// GetByID retrieves one application snapshot. Still works when the drive it
// referenced has been deleted.
func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromApplication(app)
	return &resp, nil
}

// Select marks an applicant as selected on the drive's ledger. The student
// must actually have applied.
func (s *ApplicationService) Select(ctx context.Context, driveID, studentID int64) error {
	applied, err := s.appRepo.HasApplied(ctx, studentID, driveID)
	if err != nil {
		return err
	}
	if !applied {
		return apperrors.ErrNotApplied
	}

	if err := s.driveRepo.AppendSelected(ctx, driveID, studentID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("driveID", driveID).
		Msg("Applicant marked selected")
	return nil
}

func toApplicationList(apps []*models.Application) *dto.ApplicationListResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, dto.FromApplication(a))
	}
	return &dto.ApplicationListResponse{Applications: items}
}
