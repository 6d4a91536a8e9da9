package dto

import (
	"time"

	"github.com/campusplace/backend/internal/app/models"
)

// DriveRequest carries the writable fields of a recruitment drive.
// Field-order validation beyond binding tags happens in the service.
type DriveRequest struct {
	Title            string   `json:"title" binding:"required"`
	CompanyName      string   `json:"companyName" binding:"required"`
	LastDate         string   `json:"lastDate" binding:"required" example:"2026-04-30"`
	Salary           float64  `json:"salary" binding:"required"`
	MinSscPercent    *float64 `json:"minSscPercent,omitempty"`
	MinHscPercent    *float64 `json:"minHscPercent,omitempty"`
	MinDegreePercent *float64 `json:"minDegreePercent,omitempty"`
	Openings         *int     `json:"openings,omitempty"`
	Bond             bool     `json:"bond"`
	BondMonths       *int     `json:"bondMonths,omitempty"`
	Description      string   `json:"description"`
	InterviewMode    string   `json:"interviewMode" binding:"required"`
	Website          string   `json:"website" binding:"required"`
	ContactNumber    string   `json:"contactNumber" binding:"required"`
	ContactPerson    string   `json:"contactPerson"`
}

// DriveResponse represents a drive as returned by the API
type DriveResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"companyName"`
	LastDate         string    `json:"lastDate" example:"2026-04-30"`
	Salary           float64   `json:"salary"`
	MinSscPercent    *float64  `json:"minSscPercent,omitempty"`
	MinHscPercent    *float64  `json:"minHscPercent,omitempty"`
	MinDegreePercent *float64  `json:"minDegreePercent,omitempty"`
	Openings         *int      `json:"openings,omitempty"`
	Bond             bool      `json:"bond"`
	BondMonths       *int      `json:"bondMonths,omitempty"`
	Description      string    `json:"description,omitempty"`
	InterviewMode    string    `json:"interviewMode"`
	Website          string    `json:"website"`
	ContactNumber    string    `json:"contactNumber"`
	ContactPerson    string    `json:"contactPerson,omitempty"`
	ExpiringSoon     bool      `json:"expiringSoon"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FromDrive converts a models.Drive to a DriveResponse.
// expiringSoon is computed against now so listings can flag drives that
// close within the warning window.
func FromDrive(drive *models.Drive, now time.Time, warnWindow time.Duration) DriveResponse {
	if drive == nil {
		return DriveResponse{}
	}
	return DriveResponse{
		ID:               drive.ID,
		Title:            drive.Title,
		CompanyName:      drive.CompanyName,
		LastDate:         drive.LastDate.Format("2006-01-02"),
		Salary:           drive.Salary,
		MinSscPercent:    drive.MinSscPercent,
		MinHscPercent:    drive.MinHscPercent,
		MinDegreePercent: drive.MinDegreePercent,
		Openings:         drive.Openings,
		Bond:             drive.Bond,
		BondMonths:       drive.BondMonths,
		Description:      drive.Description,
		InterviewMode:    drive.InterviewMode,
		Website:          drive.Website,
		ContactNumber:    drive.ContactNumber,
		ContactPerson:    drive.ContactPerson,
		ExpiringSoon:     drive.ExpiresWithin(now, warnWindow),
		CreatedAt:        drive.CreatedAt,
	}
}

// DriveListResponse represents a paginated list of drives
type DriveListResponse struct {
	Drives     []DriveResponse `json:"drives"`
	Pagination PaginationInfo  `json:"pagination"`
}

// DriveLedgerResponse exposes the per-drive membership ledger
type DriveLedgerResponse struct {
	DriveID     int64   `json:"driveId"`
	AppliedIDs  []int64 `json:"appliedIds"`
	SelectedIDs []int64 `json:"selectedIds"`
}
