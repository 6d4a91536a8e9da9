package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID               int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email            string     `json:"email" db:"email" example:"student@college.edu"`           // Account email, immutable once set
	Password         string     `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	FirstName        string     `json:"firstName" db:"first_name" example:"Aarav"`                // Given name
	LastName         string     `json:"lastName" db:"last_name" example:"Shah"`                   // Family name
	RoleType         RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                // ADMIN, PTO or STUDENT; fixed at creation
	IsEnabled        bool       `json:"isEnabled" db:"is_enabled" example:"false"`                // Gate on student-facing features; staff flips it
	ProfileCompleted bool       `json:"profileCompleted" db:"profile_completed" example:"false"`  // Whether the student finished the profile wizard
	CreatedAt        time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp of the last update
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// StudentProfile defines the student profile model based on the 'student_profiles' table.
// Everything beyond the enrollment number is collected by the profile-completion wizard,
// so most fields are nullable until the wizard has run.
type StudentProfile struct {
	UserID          int64      `json:"userId" db:"user_id"`                             // Primary key, one profile per account
	EnrollmentNo    string     `json:"enrollmentNo" db:"enrollment_no"`                 // Exactly 10 characters, unique across accounts
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Mobile          *string    `json:"mobile,omitempty" db:"mobile"`
	Address         *string    `json:"address,omitempty" db:"address"`
	City            *string    `json:"city,omitempty" db:"city"`
	LinkedIn        *string    `json:"linkedin,omitempty" db:"linkedin"`
	Course          *string    `json:"course,omitempty" db:"course"`
	CollegeName     *string    `json:"collegeName,omitempty" db:"college_name"`
	PassingYear     *int       `json:"passingYear,omitempty" db:"passing_year"`
	SscPercent      *float64   `json:"sscPercent,omitempty" db:"ssc_percent"`           // Secondary school percentage, 0..100
	HscPercent      *float64   `json:"hscPercent,omitempty" db:"hsc_percent"`           // Higher-secondary percentage, 0..100
	DegreePercent   *float64   `json:"degreePercent,omitempty" db:"degree_percent"`     // Current-program percentage, 0..100
	PreviousCourse  *string    `json:"previousCourse,omitempty" db:"previous_course"`
	PreviousCollege *string    `json:"previousCollege,omitempty" db:"previous_college"`
	CGPA            *float64   `json:"cgpa,omitempty" db:"cgpa"`                        // 0..10
	StartYear       *int       `json:"startYear,omitempty" db:"start_year"`
	EndYear         *int       `json:"endYear,omitempty" db:"end_year"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}
