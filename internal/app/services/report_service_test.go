package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/campusplace/backend/internal/app/models"
)

func newReportFixture() (*ReportService, *fakeUserRepo, *fakeDriveRepo, *fakeApplicationRepo) {
	userRepo := newFakeUserRepo()
	driveRepo := newFakeDriveRepo()
	appRepo := newFakeApplicationRepo(driveRepo)
	service := NewReportService(userRepo, driveRepo, appRepo, zerolog.Nop())
	return service, userRepo, driveRepo, appRepo
}

func TestParseReportFormat(t *testing.T) {
	format, err := ParseReportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	format, err = ParseReportFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)
	assert.Equal(t, "application/pdf", format.ContentType())
	assert.Equal(t, "pdf", format.Extension())

	_, err = ParseReportFormat("csv")
	assert.Error(t, err)
}

func TestStudentRoster_XLSX(t *testing.T) {
	service, userRepo, _, _ := newReportFixture()
	ssc := 78.5
	student := userRepo.add(&models.User{
		Email: "aarav@college.edu", FirstName: "Aarav", LastName: "Shah",
		RoleType: models.RoleStudent, IsEnabled: true,
	}, "2021000042")
	userRepo.profiles[student.ID].SscPercent = &ssc

	buf, filename, err := service.StudentRoster(context.Background(), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "student-roster.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Student Roster")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Enrollment No", rows[0][0])
	assert.Equal(t, "2021000042", rows[1][0])
	assert.Equal(t, "78.5", rows[1][9])
	assert.Equal(t, "true", rows[1][13])
}

func TestStudentRoster_PDF(t *testing.T) {
	service, userRepo, _, _ := newReportFixture()
	userRepo.add(&models.User{
		Email: "aarav@college.edu", FirstName: "Aarav", RoleType: models.RoleStudent,
	}, "2021000042")

	buf, filename, err := service.StudentRoster(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "student-roster.pdf", filename)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestDriveApplications_Report(t *testing.T) {
	service, _, driveRepo, appRepo := newReportFixture()
	drive := driveRepo.add(&models.Drive{
		Title:       "Graduate Engineer Trainee",
		CompanyName: "Acme Systems",
		LastDate:    testNow.AddDate(0, 0, 30),
	})
	require.NoError(t, appRepo.CreateWithLedgerAppend(context.Background(), &models.Application{
		DriveID:      drive.ID,
		StudentID:    1,
		FirstName:    "Aarav",
		LastName:     "Shah",
		Email:        "aarav@college.edu",
		EnrollmentNo: "2021000042",
		DriveTitle:   drive.Title,
		CompanyName:  drive.CompanyName,
	}))

	buf, filename, err := service.DriveApplications(context.Background(), drive.ID, FormatXLSX)
	require.NoError(t, err)
	assert.Contains(t, filename, "drive-")

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2021000042", rows[1][0])
}

func TestDriveApplications_SurvivesDriveDeletion(t *testing.T) {
	service, _, driveRepo, appRepo := newReportFixture()
	drive := driveRepo.add(&models.Drive{
		Title:       "Graduate Engineer Trainee",
		CompanyName: "Acme Systems",
		LastDate:    testNow.AddDate(0, 0, 30),
	})
	require.NoError(t, appRepo.CreateWithLedgerAppend(context.Background(), &models.Application{
		DriveID:      drive.ID,
		StudentID:    1,
		EnrollmentNo: "2021000042",
		DriveTitle:   drive.Title,
		CompanyName:  drive.CompanyName,
	}))
	require.NoError(t, driveRepo.Delete(context.Background(), drive.ID))

	buf, _, err := service.DriveApplications(context.Background(), drive.ID, FormatXLSX)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestStudentApplications_Report(t *testing.T) {
	service, _, driveRepo, appRepo := newReportFixture()
	drive := driveRepo.add(&models.Drive{
		Title:       "Backend Intern",
		CompanyName: "Beta Labs",
		LastDate:    testNow.AddDate(0, 0, 10),
	})
	require.NoError(t, appRepo.CreateWithLedgerAppend(context.Background(), &models.Application{
		DriveID:      drive.ID,
		StudentID:    7,
		EnrollmentNo: "2021000042",
		DriveTitle:   drive.Title,
		CompanyName:  drive.CompanyName,
	}))

	buf, filename, err := service.StudentApplications(context.Background(), 7, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "my-applications.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("My Applications")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Drive columns lead when the list spans drives.
	assert.Equal(t, "Drive", rows[0][0])
	assert.Equal(t, "Backend Intern", rows[1][0])
	assert.Equal(t, "Beta Labs", rows[1][1])
}
