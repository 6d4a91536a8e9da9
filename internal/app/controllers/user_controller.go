package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/services"
	"github.com/campusplace/backend/internal/middleware"
	"github.com/campusplace/backend/internal/pkg/helpers"
)

// UserController handles profile, roster and staff account operations
type UserController struct {
	profileService *services.ProfileService
	userService    *services.UserService
	logger         zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(profileService *services.ProfileService, userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		profileService: profileService,
		userService:    userService,
		logger:         logger,
	}
}

// unauthorized writes the response for requests whose session context is missing
func unauthorized(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateProfile applies owner edits to personal fields
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Failed validation"
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ValidateStep validates one profile wizard section without persisting
// @Summary Validate a wizard step
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ValidateStepRequest true "Step name and profile fields"
// @Success 200 {object} dto.APIResponse "Step is valid"
// @Failure 400 {object} dto.ErrorResponse "Failed validation"
// @Router /profile/validate-step [post]
func (c *UserController) ValidateStep(ctx *gin.Context) {
	var req dto.ValidateStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.profileService.ValidateStep(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Step is valid"))
}

// CompleteProfile validates every wizard section and persists the profile
// @Summary Complete the profile wizard
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompleteProfileRequest true "Full profile"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Completed profile"
// @Failure 400 {object} dto.ErrorResponse "Failed validation"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /profile/complete [post]
func (c *UserController) CompleteProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	var req dto.CompleteProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.profileService.CompleteProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListStudents returns the paginated student roster
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Student roster"
// @Failure 403 {object} dto.ErrorResponse "Caller is not staff"
// @Router /students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListStudents(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateStudentStatus flips a student account's enabled flag
// @Summary Enable or disable a student account
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student account ID"
// @Param request body dto.UpdateStudentStatusRequest true "Enabled flag"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated account"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/status [patch]
func (c *UserController) UpdateStudentStatus(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.SetStudentStatus(ctx.Request.Context(), studentID, *req.IsEnabled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// CreateStaff creates a placement office account
// @Summary Create a staff account
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Staff account created"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /staff [post]
func (c *UserController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.CreateStaff(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListStaff returns all placement office accounts
// @Summary List staff accounts
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Staff accounts"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /staff [get]
func (c *UserController) ListStaff(ctx *gin.Context) {
	resp, err := c.userService.ListStaff(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteStaff removes a placement office account
// @Summary Delete a staff account
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff account ID"
// @Success 200 {object} dto.APIResponse "Staff account deleted"
// @Failure 404 {object} dto.ErrorResponse "Staff account not found"
// @Router /staff/{id} [delete]
func (c *UserController) DeleteStaff(ctx *gin.Context) {
	staffID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteStaff(ctx.Request.Context(), staffID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Staff account deleted"))
}
