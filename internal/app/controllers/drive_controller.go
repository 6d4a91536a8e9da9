package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/services"
	"github.com/campusplace/backend/internal/middleware"
	"github.com/campusplace/backend/internal/pkg/helpers"
)

// DriveController handles recruitment drive operations
type DriveController struct {
	driveService       *services.DriveService
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService *services.DriveService, applicationService *services.ApplicationService, logger zerolog.Logger) *DriveController {
	return &DriveController{
		driveService:       driveService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// ListDrives returns active drives
// @Summary List active drives
// @Description Lists open drives, newest first. Expired drives are pruned lazily and never surface.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param q query string false "Match against title or company"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.DriveListResponse} "Active drives"
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.driveService.ListDrives(ctx.Request.Context(), ctx.Query("q"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetDrive returns one drive
// @Summary Get a drive
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.DriveResponse} "Drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found or expired"
// @Router /drives/{id} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.driveService.GetDrive(ctx.Request.Context(), driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// CreateDrive stores a new drive
// @Summary Create a drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DriveRequest true "Drive fields"
// @Success 201 {object} dto.APIResponse{data=dto.DriveResponse} "Created drive"
// @Failure 400 {object} dto.ErrorResponse "Failed validation"
// @Failure 409 {object} dto.ErrorResponse "A drive with this title and company already exists"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	var req dto.DriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.driveService.CreateDrive(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// UpdateDrive rewrites an existing drive
// @Summary Update a drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.DriveRequest true "Drive fields"
// @Success 200 {object} dto.APIResponse{data=dto.DriveResponse} "Updated drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.driveService.UpdateDrive(ctx.Request.Context(), driveID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteDrive removes a drive
// @Summary Delete a drive
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse "Drive deleted"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.driveService.DeleteDrive(ctx.Request.Context(), driveID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Drive deleted"))
}

// GetLedger returns a drive's applied/selected membership ledger
// @Summary Get a drive's ledger
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.DriveLedgerResponse} "Drive ledger"
// @Failure 404 {object} dto.ErrorResponse "Ledger not found"
// @Router /drives/{id}/ledger [get]
func (c *DriveController) GetLedger(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.driveService.GetLedger(ctx.Request.Context(), driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Apply submits the caller's application to a drive
// @Summary Apply to a drive
// @Description Snapshots the caller's academic record into an application and appends them to the drive's applied ledger.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application created"
// @Failure 400 {object} dto.ErrorResponse "Academic percentage below the drive cutoff"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or drive expired"
// @Router /drives/{id}/apply [post]
func (c *DriveController) Apply(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.applicationService.Apply(ctx.Request.Context(), studentID, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListApplications returns all applicants for a drive
// @Summary List a drive's applicants
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse} "Applicants"
// @Router /drives/{id}/applications [get]
func (c *DriveController) ListApplications(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.applicationService.ListByDrive(ctx.Request.Context(), driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SelectStudent marks an applicant as selected
// @Summary Mark an applicant selected
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.SelectStudentRequest true "Student account ID"
// @Success 200 {object} dto.APIResponse "Student marked selected"
// @Failure 409 {object} dto.ErrorResponse "Student has not applied to this drive"
// @Router /drives/{id}/select [post]
func (c *DriveController) SelectStudent(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SelectStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.applicationService.Select(ctx.Request.Context(), driveID, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student marked selected"))
}
