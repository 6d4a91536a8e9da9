package models

import (
	"time"
)

// Drive defines the recruitment posting model based on the 'drives' table
type Drive struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Title            string    `json:"title" db:"title" example:"Graduate Engineer Trainee"`
	CompanyName      string    `json:"companyName" db:"company_name" example:"Acme Systems"`
	LastDate         time.Time `json:"lastDate" db:"last_date"`                               // Final application date; drives past it are pruned
	Salary           float64   `json:"salary" db:"salary" example:"450000"`                   // Annual salary, must be positive
	MinSscPercent    *float64  `json:"minSscPercent,omitempty" db:"min_ssc_percent"`          // Optional cutoffs, 0..100
	MinHscPercent    *float64  `json:"minHscPercent,omitempty" db:"min_hsc_percent"`
	MinDegreePercent *float64  `json:"minDegreePercent,omitempty" db:"min_degree_percent"`
	Openings         *int      `json:"openings,omitempty" db:"openings"`
	Bond             bool      `json:"bond" db:"bond"`                                        // Bond agreement flag
	BondMonths       *int      `json:"bondMonths,omitempty" db:"bond_months"`                 // Required only when Bond is set
	Description      string    `json:"description" db:"description"`
	InterviewMode    string    `json:"interviewMode" db:"interview_mode" example:"On-campus"`
	Website          string    `json:"website" db:"website"`
	ContactNumber    string    `json:"contactNumber" db:"contact_number"`                     // Exactly 10 digits
	ContactPerson    string    `json:"contactPerson" db:"contact_person"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// ExpiresWithin reports whether the drive's last application date falls inside
// the next d window, measured from now. Used for the "expiring soon" badge.
func (dr *Drive) ExpiresWithin(now time.Time, d time.Duration) bool {
	return dr.LastDate.Before(now.Add(d))
}

// Expired reports whether the drive's last application date is strictly before
// the given day (date precision, not instant precision).
func (dr *Drive) Expired(today time.Time) bool {
	y1, m1, d1 := dr.LastDate.Date()
	y2, m2, d2 := today.Date()
	last := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	cur := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return last.Before(cur)
}

// DriveLedger is the companion record created atomically with each drive. It
// shares the drive's identifier and tracks applied and selected students as
// ordered lists.
type DriveLedger struct {
	DriveID     int64   `json:"driveId" db:"drive_id"`
	AppliedIDs  []int64 `json:"appliedIds" db:"applied_ids"`
	SelectedIDs []int64 `json:"selectedIds" db:"selected_ids"`
}
