package models

import (
	"time"
)

// Application records a student's application to a drive. The applicant fields
// are a snapshot taken at application time; the record is never updated, and it
// deliberately carries no foreign key to drives so that reporting keeps working
// after a drive is deleted.
type Application struct {
	ID            int64     `json:"id" db:"id"`
	DriveID       int64     `json:"driveId" db:"drive_id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	EnrollmentNo  string    `json:"enrollmentNo" db:"enrollment_no"`
	SscPercent    *float64  `json:"sscPercent,omitempty" db:"ssc_percent"`
	HscPercent    *float64  `json:"hscPercent,omitempty" db:"hsc_percent"`
	DegreePercent *float64  `json:"degreePercent,omitempty" db:"degree_percent"`
	DriveTitle    string    `json:"driveTitle" db:"drive_title"`
	CompanyName   string    `json:"companyName" db:"company_name"`
	AppliedAt     time.Time `json:"appliedAt" db:"applied_at"` // Server-assigned
}

// Notification is a per-student message with a seen flag.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Message   string    `json:"message" db:"message"`
	Seen      bool      `json:"seen" db:"seen"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
