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
	"github.com/campusplace/backend/internal/pkg/helpers"
	"github.com/campusplace/backend/internal/pkg/validation"
)

// ExpiryWarnWindow is how close to its last date a drive gets flagged
// as expiring soon.
const ExpiryWarnWindow = 3 * 24 * time.Hour

// DriveService handles drive lifecycle and listing
type DriveService struct {
	driveRepo repositories.IDriveRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewDriveService creates a new DriveService
func NewDriveService(driveRepo repositories.IDriveRepository, logger zerolog.Logger) *DriveService {
	return &DriveService{
		driveRepo: driveRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// validateDrive runs the write-side checks in a fixed order and returns the
// parsed last date.
func (s *DriveService) validateDrive(req *dto.DriveRequest) (time.Time, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"Title", req.Title},
		{"Company name", req.CompanyName},
		{"Last date", req.LastDate},
		{"Interview mode", req.InterviewMode},
		{"Website", req.Website},
	} {
		if strings.TrimSpace(f.value) == "" {
			return time.Time{}, apperrors.NewValidationError(f.name + " is required")
		}
	}

	lastDate, err := time.Parse("2006-01-02", req.LastDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Last date must be a valid YYYY-MM-DD date")
	}

	today := helpers.StartOfDay(s.now())
	if lastDate.Before(today) {
		return time.Time{}, apperrors.NewValidationError("last date cannot be in the past")
	}

	if req.Salary <= 0 {
		return time.Time{}, apperrors.NewValidationError("Salary must be a positive amount")
	}

	if req.Bond {
		if req.BondMonths == nil {
			return time.Time{}, apperrors.NewValidationError("Bond duration in months is required when a bond applies")
		}
		if *req.BondMonths <= 0 {
			return time.Time{}, apperrors.NewValidationError("Bond duration must be a positive number of months")
		}
	}

	if !validation.ValidMobile(req.ContactNumber) {
		return time.Time{}, apperrors.NewValidationError("Contact number must be exactly 10 digits")
	}

	for _, pc := range []struct {
		name  string
		value *float64
	}{
		{"SSC", req.MinSscPercent},
		{"HSC", req.MinHscPercent},
		{"Degree", req.MinDegreePercent},
	} {
		if pc.value != nil && !validation.ValidPercentage(*pc.value) {
			return time.Time{}, apperrors.NewValidationError(
				fmt.Sprintf("Minimum %s percentage must be between 0 and 100", pc.name))
		}
	}

	return lastDate, nil
}

func driveFromRequest(req *dto.DriveRequest, lastDate time.Time) *models.Drive {
	return &models.Drive{
		Title:            strings.TrimSpace(req.Title),
		CompanyName:      strings.TrimSpace(req.CompanyName),
		LastDate:         lastDate,
		Salary:           req.Salary,
		MinSscPercent:    req.MinSscPercent,
		MinHscPercent:    req.MinHscPercent,
		MinDegreePercent: req.MinDegreePercent,
		Openings:         req.Openings,
		Bond:             req.Bond,
		BondMonths:       req.BondMonths,
		Description:      req.Description,
		InterviewMode:    req.InterviewMode,
		Website:          req.Website,
		ContactNumber:    req.ContactNumber,
		ContactPerson:    req.ContactPerson,
	}
}

// CreateDrive validates and stores a new drive with its empty ledger
func (s *DriveService) CreateDrive(ctx context.Context, req *dto.DriveRequest) (*dto.DriveResponse, error) {
	lastDate, err := s.validateDrive(req)
	if err != nil {
		return nil, err
	}

	// A lapsed drive with the same title and company would still trip the
	// unique index, so prune before inserting.
	if _, err := s.driveRepo.DeleteExpired(ctx, s.now()); err != nil {
		s.logger.Warn().Err(err).Msg("Expired drive pruning failed")
	}

	drive := driveFromRequest(req, lastDate)
	if err := s.driveRepo.CreateWithLedger(ctx, drive); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("driveID", drive.ID).Str("company", drive.CompanyName).Msg("Drive created")

	resp := dto.FromDrive(drive, s.now(), ExpiryWarnWindow)
	return &resp, nil
}

// UpdateDrive validates and rewrites an existing drive
func (s *DriveService) UpdateDrive(ctx context.Context, id int64, req *dto.DriveRequest) (*dto.DriveResponse, error) {
	lastDate, err := s.validateDrive(req)
	if err != nil {
		return nil, err
	}

	drive := driveFromRequest(req, lastDate)
	drive.ID = id
	if err := s.driveRepo.Update(ctx, drive); err != nil {
		return nil, err
	}

	updated, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromDrive(updated, s.now(), ExpiryWarnWindow)
	return &resp, nil
}

// GetDrive retrieves one drive. Expired drives read as absent.
func (s *DriveService) GetDrive(ctx context.Context, id int64) (*dto.DriveResponse, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if drive.Expired(s.now()) {
		return nil, apperrors.ErrDriveNotFound
	}

	resp := dto.FromDrive(drive, s.now(), ExpiryWarnWindow)
	return &resp, nil
}

// ListDrives returns active drives, pruning expired rows first. Pruning is
// best-effort; the listing filter alone already guarantees expired drives
// never surface.
func (s *DriveService) ListDrives(ctx context.Context, query string, page, size int) (*dto.DriveListResponse, error) {
	now := s.now()

	if _, err := s.driveRepo.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn().Err(err).Msg("Expired drive pruning failed")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	drives, total, err := s.driveRepo.ListActive(ctx, repositories.DriveFilter{Query: query}, now, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DriveResponse, 0, len(drives))
	for _, d := range drives {
		items = append(items, dto.FromDrive(d, now, ExpiryWarnWindow))
	}

	return &dto.DriveListResponse{
		Drives:     items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// DeleteDrive removes a drive and, through the cascade, its ledger
func (s *DriveService) DeleteDrive(ctx context.Context, id int64) error {
	if err := s.driveRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("driveID", id).Msg("Drive deleted")
	return nil
}

// GetLedger returns the drive's applied/selected membership lists
func (s *DriveService) GetLedger(ctx context.Context, driveID int64) (*dto.DriveLedgerResponse, error) {
	ledger, err := s.driveRepo.GetLedger(ctx, driveID)
	if err != nil {
		return nil, err
	}
	return &dto.DriveLedgerResponse{
		DriveID:     ledger.DriveID,
		AppliedIDs:  ledger.AppliedIDs,
		SelectedIDs: ledger.SelectedIDs,
	}, nil
}
