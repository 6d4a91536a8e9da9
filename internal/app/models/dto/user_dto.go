package dto

import (
	"time"

	"github.com/campusplace/backend/internal/app/models"
)

// UserResponse represents basic account information
type UserResponse struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Role             string     `json:"role"`
	IsEnabled        bool       `json:"isEnabled"`
	ProfileCompleted bool       `json:"profileCompleted"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Role:             string(user.RoleType),
		IsEnabled:        user.IsEnabled,
		ProfileCompleted: user.ProfileCompleted,
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}
}

// StudentProfileResponse represents a student account with its profile
type StudentProfileResponse struct {
	User            UserResponse `json:"user"`
	EnrollmentNo    string       `json:"enrollmentNo"`
	DateOfBirth     *string      `json:"dateOfBirth,omitempty" example:"2005-06-14"`
	Mobile          *string      `json:"mobile,omitempty"`
	Address         *string      `json:"address,omitempty"`
	City            *string      `json:"city,omitempty"`
	LinkedIn        *string      `json:"linkedin,omitempty"`
	Course          *string      `json:"course,omitempty"`
	CollegeName     *string      `json:"collegeName,omitempty"`
	PassingYear     *int         `json:"passingYear,omitempty"`
	SscPercent      *float64     `json:"sscPercent,omitempty"`
	HscPercent      *float64     `json:"hscPercent,omitempty"`
	DegreePercent   *float64     `json:"degreePercent,omitempty"`
	CGPA            *float64     `json:"cgpa,omitempty"`
	PreviousCourse  *string      `json:"previousCourse,omitempty"`
	PreviousCollege *string      `json:"previousCollege,omitempty"`
	StartYear       *int         `json:"startYear,omitempty"`
	EndYear         *int         `json:"endYear,omitempty"`
}

// FromStudentProfile converts a user and profile pair into a StudentProfileResponse
func FromStudentProfile(user *models.User, profile *models.StudentProfile) StudentProfileResponse {
	resp := StudentProfileResponse{
		User: FromUser(user),
	}
	if profile == nil {
		return resp
	}

	resp.EnrollmentNo = profile.EnrollmentNo
	if profile.DateOfBirth != nil {
		dob := profile.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	resp.Mobile = profile.Mobile
	resp.Address = profile.Address
	resp.City = profile.City
	resp.LinkedIn = profile.LinkedIn
	resp.Course = profile.Course
	resp.CollegeName = profile.CollegeName
	resp.PassingYear = profile.PassingYear
	resp.SscPercent = profile.SscPercent
	resp.HscPercent = profile.HscPercent
	resp.DegreePercent = profile.DegreePercent
	resp.CGPA = profile.CGPA
	resp.PreviousCourse = profile.PreviousCourse
	resp.PreviousCollege = profile.PreviousCollege
	resp.StartYear = profile.StartYear
	resp.EndYear = profile.EndYear
	return resp
}

// UpdateProfileRequest represents owner edits to personal fields
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Mobile    *string `json:"mobile,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
}

// CompleteProfileRequest carries the merged output of the profile wizard.
// Dates are ISO "2006-01-02" strings.
type CompleteProfileRequest struct {
	FirstName       string   `json:"firstName" binding:"required"`
	LastName        string   `json:"lastName" binding:"required"`
	DateOfBirth     string   `json:"dateOfBirth" binding:"required"`
	Mobile          string   `json:"mobile" binding:"required"`
	Address         string   `json:"address" binding:"required"`
	City            string   `json:"city" binding:"required"`
	LinkedIn        *string  `json:"linkedin,omitempty"`
	Course          *string  `json:"course,omitempty"`
	CollegeName     string   `json:"collegeName" binding:"required"`
	PassingYear     int      `json:"passingYear" binding:"required"`
	SscPercent      *float64 `json:"sscPercent,omitempty"`
	HscPercent      *float64 `json:"hscPercent,omitempty"`
	DegreePercent   *float64 `json:"degreePercent,omitempty"`
	CGPA            *float64 `json:"cgpa,omitempty"`
	PreviousCourse  *string  `json:"previousCourse,omitempty"`
	PreviousCollege *string  `json:"previousCollege,omitempty"`
	StartYear       *int     `json:"startYear,omitempty"`
	EndYear         *int     `json:"endYear,omitempty"`
}

// Profile wizard step names accepted by ValidateStepRequest
const (
	StepPersonal  = "personal"
	StepAcademic  = "academic"
	StepEducation = "education"
)

// ValidateStepRequest validates a single wizard section without persisting.
// The profile fields skip binding validation so a partial payload binds;
// the named section's own validator decides what is required.
type ValidateStepRequest struct {
	Step string `json:"step" binding:"required,oneof=personal academic education"`

	CompleteProfileRequest `binding:"-"`
}

// StudentListResponse is the paginated roster
type StudentListResponse struct {
	Students   []StudentProfileResponse `json:"students"`
	Pagination PaginationInfo           `json:"pagination"`
}

// UpdateStudentStatusRequest flips a student account's enabled flag
type UpdateStudentStatusRequest struct {
	IsEnabled *bool `json:"isEnabled" binding:"required"`
}

// CreateStaffRequest creates a placement office (PTO) account
type CreateStaffRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}
