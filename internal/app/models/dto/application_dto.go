package dto

import (
	"time"

	"github.com/campusplace/backend/internal/app/models"
)

// ApplicationResponse represents a stored application snapshot
type ApplicationResponse struct {
	ID            int64     `json:"id"`
	DriveID       int64     `json:"driveId"`
	StudentID     int64     `json:"studentId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	EnrollmentNo  string    `json:"enrollmentNo"`
	SscPercent    *float64  `json:"sscPercent,omitempty"`
	HscPercent    *float64  `json:"hscPercent,omitempty"`
	DegreePercent *float64  `json:"degreePercent,omitempty"`
	DriveTitle    string    `json:"driveTitle"`
	CompanyName   string    `json:"companyName"`
	AppliedAt     time.Time `json:"appliedAt"`
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(app *models.Application) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	return ApplicationResponse{
		ID:            app.ID,
		DriveID:       app.DriveID,
		StudentID:     app.StudentID,
		FirstName:     app.FirstName,
		LastName:      app.LastName,
		Email:         app.Email,
		EnrollmentNo:  app.EnrollmentNo,
		SscPercent:    app.SscPercent,
		HscPercent:    app.HscPercent,
		DegreePercent: app.DegreePercent,
		DriveTitle:    app.DriveTitle,
		CompanyName:   app.CompanyName,
		AppliedAt:     app.AppliedAt,
	}
}

// ApplicationListResponse represents a list of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// SelectStudentRequest marks an applicant as selected for a drive
type SelectStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
}
