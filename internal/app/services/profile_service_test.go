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
	"github.com/campusplace/backend/internal/pkg/validation"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newProfileFixture() (*ProfileService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	service := NewProfileService(userRepo, validation.DOBWindow{MinYear: 2004, MaxYear: 2006}, zerolog.Nop())
	service.now = func() time.Time { return testNow }
	return service, userRepo
}

func seedStudent(repo *fakeUserRepo) *models.User {
	return repo.add(&models.User{
		Email:     "aarav@college.edu",
		FirstName: "Aarav",
		LastName:  "Shah",
		RoleType:  models.RoleStudent,
	}, "2021000042")
}

func validCompleteRequest() *dto.CompleteProfileRequest {
	ssc := 78.5
	hsc := 81.0
	return &dto.CompleteProfileRequest{
		FirstName:   "Aarav",
		LastName:    "Shah",
		DateOfBirth: "2005-06-14",
		Mobile:      "9876543210",
		Address:     "12 MG Road",
		City:        "Pune",
		CollegeName: "City Engineering College",
		PassingYear: 2026,
		SscPercent:  &ssc,
		HscPercent:  &hsc,
	}
}

func TestGetProfile_Student(t *testing.T) {
	service, repo := newProfileFixture()
	student := seedStudent(repo)

	resp, err := service.GetProfile(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, "2021000042", resp.EnrollmentNo)
	assert.Equal(t, "Aarav", resp.User.FirstName)
}

func TestGetProfile_StaffHasNoProfile(t *testing.T) {
	service, repo := newProfileFixture()
	staff := repo.add(&models.User{
		Email: "pto@college.edu", FirstName: "Priya", RoleType: models.RolePTO,
	}, "")

	resp, err := service.GetProfile(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.EnrollmentNo)
}

func TestUpdateProfile_MergesFields(t *testing.T) {
	service, repo := newProfileFixture()
	student := seedStudent(repo)

	mobile := "9876543210"
	city := "Pune"
	resp, err := service.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		FirstName: "Aarav",
		LastName:  "Sharma",
		Mobile:    &mobile,
		City:      &city,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sharma", resp.User.LastName)
	require.NotNil(t, resp.Mobile)
	assert.Equal(t, "9876543210", *resp.Mobile)
	require.NotNil(t, resp.City)
	assert.Equal(t, "Pune", *resp.City)
}

func TestUpdateProfile_RejectsBadMobile(t *testing.T) {
	service, repo := newProfileFixture()
	student := seedStudent(repo)

	mobile := "12345"
	_, err := service.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		FirstName: "Aarav", LastName: "Shah", Mobile: &mobile,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCompleteProfile_Success(t *testing.T) {
	service, repo := newProfileFixture()
	student := seedStudent(repo)

	resp, err := service.CompleteProfile(context.Background(), student.ID, validCompleteRequest())
	require.NoError(t, err)
	assert.True(t, resp.User.ProfileCompleted)
	require.NotNil(t, resp.DateOfBirth)
	assert.Equal(t, "2005-06-14", *resp.DateOfBirth)
	require.NotNil(t, resp.PassingYear)
	assert.Equal(t, 2026, *resp.PassingYear)
}

func TestCompleteProfile_StaffForbidden(t *testing.T) {
	service, repo := newProfileFixture()
	staff := repo.add(&models.User{
		Email: "pto@college.edu", RoleType: models.RolePTO,
	}, "")

	_, err := service.CompleteProfile(context.Background(), staff.ID, validCompleteRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCompleteProfile_DOBOutsideWindow(t *testing.T) {
	service, repo := newProfileFixture()
	student := seedStudent(repo)

	req := validCompleteRequest()
	req.DateOfBirth = "1999-01-01"
	_, err := service.CompleteProfile(context.Background(), student.ID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "Date of birth year must fall within 2004-2006")
}

func TestValidateStep_Personal(t *testing.T) {
	service, _ := newProfileFixture()

	tests := []struct {
		name    string
		mutate  func(req *dto.CompleteProfileRequest)
		message string
	}{
		{
			name:    "bad date format",
			mutate:  func(req *dto.CompleteProfileRequest) { req.DateOfBirth = "14/06/2005" },
			message: "Date of birth must be a valid YYYY-MM-DD date",
		},
		{
			name:    "missing city",
			mutate:  func(req *dto.CompleteProfileRequest) { req.City = " " },
			message: "City is required",
		},
		{
			name:    "bad mobile",
			mutate:  func(req *dto.CompleteProfileRequest) { req.Mobile = "98765" },
			message: "Mobile number must be exactly 10 digits",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCompleteRequest()
			tc.mutate(req)

			err := service.ValidateStep(&dto.ValidateStepRequest{
				Step:                   dto.StepPersonal,
				CompleteProfileRequest: *req,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestValidateStep_Academic(t *testing.T) {
	service, _ := newProfileFixture()

	req := validCompleteRequest()
	req.PassingYear = 1995
	err := service.ValidateStep(&dto.ValidateStepRequest{
		Step:                   dto.StepAcademic,
		CompleteProfileRequest: *req,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passing year must be a 4-digit year between 2000 and 2031")

	req = validCompleteRequest()
	bad := 105.0
	req.HscPercent = &bad
	err = service.ValidateStep(&dto.ValidateStepRequest{
		Step:                   dto.StepAcademic,
		CompleteProfileRequest: *req,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HSC percentage must be between 0 and 100")
}

func TestValidateStep_EducationOptionalBounds(t *testing.T) {
	service, _ := newProfileFixture()

	// Everything optional: an empty education section is valid.
	err := service.ValidateStep(&dto.ValidateStepRequest{
		Step:                   dto.StepEducation,
		CompleteProfileRequest: *validCompleteRequest(),
	})
	assert.NoError(t, err)

	req := validCompleteRequest()
	cgpa := 11.0
	req.CGPA = &cgpa
	err = service.ValidateStep(&dto.ValidateStepRequest{
		Step:                   dto.StepEducation,
		CompleteProfileRequest: *req,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CGPA must be between 0 and 10")

	req = validCompleteRequest()
	start, end := 2024, 2022
	req.StartYear = &start
	req.EndYear = &end
	err = service.ValidateStep(&dto.ValidateStepRequest{
		Step:                   dto.StepEducation,
		CompleteProfileRequest: *req,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "End year cannot be before start year")
}
