package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

func newDriveFixture() (*DriveService, *fakeDriveRepo) {
	driveRepo := newFakeDriveRepo()
	service := NewDriveService(driveRepo, zerolog.Nop())
	service.now = func() time.Time { return testNow }
	return service, driveRepo
}

func validDriveRequest() *dto.DriveRequest {
	return &dto.DriveRequest{
		Title:         "Graduate Engineer Trainee",
		CompanyName:   "Acme Systems",
		LastDate:      "2026-04-30",
		Salary:        450000,
		InterviewMode: "ONLINE",
		Website:       "https://careers.acme.example",
		ContactNumber: "9876543210",
	}
}

func TestCreateDrive_Success(t *testing.T) {
	service, repo := newDriveFixture()

	resp, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)
	assert.Equal(t, "Acme Systems", resp.CompanyName)
	assert.Equal(t, "2026-04-30", resp.LastDate)
	assert.False(t, resp.ExpiringSoon)

	// The empty ledger is created alongside the drive.
	ledger, err := repo.GetLedger(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Empty(t, ledger.AppliedIDs)
	assert.Empty(t, ledger.SelectedIDs)
}

func TestCreateDrive_Duplicate(t *testing.T) {
	service, _ := newDriveFixture()

	_, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)

	_, err = service.CreateDrive(context.Background(), validDriveRequest())
	assert.ErrorIs(t, err, apperrors.ErrDriveAlreadyExists)
}

func TestCreateDrive_ValidationOrder(t *testing.T) {
	service, _ := newDriveFixture()

	bondMonths := 0
	negative := -5.0
	tests := []struct {
		name    string
		mutate  func(req *dto.DriveRequest)
		message string
	}{
		{
			name:    "missing title",
			mutate:  func(req *dto.DriveRequest) { req.Title = " " },
			message: "Title is required",
		},
		{
			name:    "missing company",
			mutate:  func(req *dto.DriveRequest) { req.CompanyName = "" },
			message: "Company name is required",
		},
		{
			name:    "unparseable date",
			mutate:  func(req *dto.DriveRequest) { req.LastDate = "30-04-2026" },
			message: "Last date must be a valid YYYY-MM-DD date",
		},
		{
			name:    "past date",
			mutate:  func(req *dto.DriveRequest) { req.LastDate = "2026-03-14" },
			message: "last date cannot be in the past",
		},
		{
			name:    "non-positive salary",
			mutate:  func(req *dto.DriveRequest) { req.Salary = 0 },
			message: "Salary must be a positive amount",
		},
		{
			name:    "bond without months",
			mutate:  func(req *dto.DriveRequest) { req.Bond = true },
			message: "Bond duration in months is required when a bond applies",
		},
		{
			name: "bond with zero months",
			mutate: func(req *dto.DriveRequest) {
				req.Bond = true
				req.BondMonths = &bondMonths
			},
			message: "Bond duration must be a positive number of months",
		},
		{
			name:    "bad contact number",
			mutate:  func(req *dto.DriveRequest) { req.ContactNumber = "12345" },
			message: "Contact number must be exactly 10 digits",
		},
		{
			name:    "negative cutoff",
			mutate:  func(req *dto.DriveRequest) { req.MinSscPercent = &negative },
			message: "Minimum SSC percentage must be between 0 and 100",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validDriveRequest()
			tc.mutate(req)

			_, err := service.CreateDrive(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestCreateDrive_LastDateTodayAllowed(t *testing.T) {
	service, _ := newDriveFixture()

	req := validDriveRequest()
	req.LastDate = testNow.Format("2006-01-02")

	resp, err := service.CreateDrive(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.ExpiringSoon)
}

func TestUpdateDrive_Rewrites(t *testing.T) {
	service, _ := newDriveFixture()

	created, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)

	req := validDriveRequest()
	req.Salary = 600000
	updated, err := service.UpdateDrive(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, float64(600000), updated.Salary)
}

func TestUpdateDrive_NotFound(t *testing.T) {
	service, _ := newDriveFixture()

	_, err := service.UpdateDrive(context.Background(), 42, validDriveRequest())
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func TestGetDrive_ExpiredReadsAsAbsent(t *testing.T) {
	service, repo := newDriveFixture()

	stale := repo.add(&models.Drive{
		Title:       "Old Drive",
		CompanyName: "Past Co",
		LastDate:    testNow.AddDate(0, 0, -2),
	})

	_, err := service.GetDrive(context.Background(), stale.ID)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func TestCreateDrive_ReplacesLapsedDuplicate(t *testing.T) {
	service, repo := newDriveFixture()

	// Same title and company as validDriveRequest, but already past its window.
	repo.add(&models.Drive{
		Title:       "Graduate Engineer Trainee",
		CompanyName: "Acme Systems",
		LastDate:    testNow.AddDate(0, 0, -2),
	})

	resp, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)
	assert.Equal(t, "Graduate Engineer Trainee", resp.Title)
	assert.Len(t, repo.drives, 1)
}

func TestListDrives_PrunesExpired(t *testing.T) {
	service, repo := newDriveFixture()

	repo.add(&models.Drive{Title: "Old", CompanyName: "Past Co", LastDate: testNow.AddDate(0, 0, -2)})
	repo.add(&models.Drive{Title: "Open", CompanyName: "Future Co", LastDate: testNow.AddDate(0, 0, 30)})

	resp, err := service.ListDrives(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Drives, 1)
	assert.Equal(t, "Open", resp.Drives[0].Title)
	assert.Equal(t, 1, repo.pruneCount)
	assert.Len(t, repo.drives, 1)
}

func TestListDrives_PruneFailureIsNotFatal(t *testing.T) {
	service, repo := newDriveFixture()
	repo.failPrune = assert.AnError
	repo.add(&models.Drive{Title: "Open", CompanyName: "Future Co", LastDate: testNow.AddDate(0, 0, 30)})

	resp, err := service.ListDrives(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Drives, 1)
}

func TestDeleteDrive_CascadesLedger(t *testing.T) {
	service, repo := newDriveFixture()

	created, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteDrive(context.Background(), created.ID))

	_, err = repo.GetLedger(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrLedgerNotFound)
}

func TestGetLedger(t *testing.T) {
	service, repo := newDriveFixture()

	created, err := service.CreateDrive(context.Background(), validDriveRequest())
	require.NoError(t, err)
	require.NoError(t, repo.AppendSelected(context.Background(), created.ID, 7))

	ledger, err := service.GetLedger(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ledger.SelectedIDs)
}
