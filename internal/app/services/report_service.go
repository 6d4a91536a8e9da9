package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/export"
)

// ReportFormat selects the rendering of a report download.
type ReportFormat string

const (
	FormatXLSX ReportFormat = "xlsx"
	FormatPDF  ReportFormat = "pdf"
)

// ContentType returns the MIME type to serve the rendered report with.
func (f ReportFormat) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension for the rendered report.
func (f ReportFormat) Extension() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "xlsx"
}

// ParseReportFormat validates a format query value, defaulting to xlsx.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch s {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatPDF):
		return FormatPDF, nil
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("Unsupported report format: %s", s))
	}
}

// ReportService renders rosters and application lists as downloadable files.
type ReportService struct {
	userRepo        repositories.IUserRepository
	driveRepo       repositories.IDriveRepository
	applicationRepo repositories.IApplicationRepository
	logger          zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	userRepo repositories.IUserRepository,
	driveRepo repositories.IDriveRepository,
	applicationRepo repositories.IApplicationRepository,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		userRepo:        userRepo,
		driveRepo:       driveRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// StudentRoster renders every registered student with their profile details.
func (s *ReportService) StudentRoster(ctx context.Context, format ReportFormat) (*bytes.Buffer, string, error) {
	profiles, err := s.userRepo.AllStudents(ctx)
	if err != nil {
		return nil, "", err
	}

	table := export.Table{
		Title: "Student Roster",
		Headers: []string{
			"Enrollment No", "First Name", "Last Name", "Email", "Mobile", "City",
			"Course", "College", "Passing Year", "SSC %", "HSC %", "Degree %", "CGPA", "Enabled",
		},
		Rows: make([][]string, 0, len(profiles)),
	}
	for _, p := range profiles {
		row := []string{
			p.EnrollmentNo,
			p.User.FirstName,
			p.User.LastName,
			p.User.Email,
			stringOrBlank(p.Mobile),
			stringOrBlank(p.City),
			stringOrBlank(p.Course),
			stringOrBlank(p.CollegeName),
			intOrBlank(p.PassingYear),
			percentOrBlank(p.SscPercent),
			percentOrBlank(p.HscPercent),
			percentOrBlank(p.DegreePercent),
			percentOrBlank(p.CGPA),
			strconv.FormatBool(p.User.IsEnabled),
		}
		table.Rows = append(table.Rows, row)
	}

	buf, err := s.render(table, format)
	if err != nil {
		return nil, "", err
	}
	return buf, "student-roster." + format.Extension(), nil
}

// DriveApplications renders the applicant list of one drive.
func (s *ReportService) DriveApplications(ctx context.Context, driveID int64, format ReportFormat) (*bytes.Buffer, string, error) {
	applications, err := s.applicationRepo.ListByDrive(ctx, driveID)
	if err != nil {
		return nil, "", err
	}

	// The drive row may already be pruned; the snapshots keep the title alive.
	title := fmt.Sprintf("Drive %d Applicants", driveID)
	if drive, err := s.driveRepo.GetByID(ctx, driveID); err == nil {
		title = fmt.Sprintf("%s - %s Applicants", drive.Title, drive.CompanyName)
	} else if len(applications) > 0 {
		title = fmt.Sprintf("%s - %s Applicants", applications[0].DriveTitle, applications[0].CompanyName)
	} else if !errors.Is(err, apperrors.ErrDriveNotFound) {
		return nil, "", err
	}
	table := applicationTable(title, applications, false)

	buf, err := s.render(table, format)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("drive-%d-applications.%s", driveID, format.Extension())
	return buf, filename, nil
}

// StudentApplications renders everything one student has applied to.
func (s *ReportService) StudentApplications(ctx context.Context, studentID int64, format ReportFormat) (*bytes.Buffer, string, error) {
	applications, err := s.applicationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	table := applicationTable("My Applications", applications, true)

	buf, err := s.render(table, format)
	if err != nil {
		return nil, "", err
	}
	return buf, "my-applications." + format.Extension(), nil
}

func (s *ReportService) render(table export.Table, format ReportFormat) (*bytes.Buffer, error) {
	var (
		buf *bytes.Buffer
		err error
	)
	if format == FormatPDF {
		buf, err = export.PDF(table)
	} else {
		buf, err = export.XLSX(table)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("title", table.Title).Msg("Failed to render report")
		return nil, fmt.Errorf("error rendering report: %w", err)
	}
	return buf, nil
}

// applicationTable lays out application snapshots. When withDrive is set the
// drive columns are included, for lists that span more than one drive.
func applicationTable(title string, applications []*models.Application, withDrive bool) export.Table {
	headers := []string{"Enrollment No", "First Name", "Last Name", "Email", "SSC %", "HSC %", "Degree %", "Applied At"}
	if withDrive {
		headers = append([]string{"Drive", "Company"}, headers...)
	}

	table := export.Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0, len(applications)),
	}
	for _, app := range applications {
		row := []string{
			app.EnrollmentNo,
			app.FirstName,
			app.LastName,
			app.Email,
			percentOrBlank(app.SscPercent),
			percentOrBlank(app.HscPercent),
			percentOrBlank(app.DegreePercent),
			app.AppliedAt.Format("2006-01-02 15:04"),
		}
		if withDrive {
			row = append([]string{app.DriveTitle, app.CompanyName}, row...)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func stringOrBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrBlank(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func percentOrBlank(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}
