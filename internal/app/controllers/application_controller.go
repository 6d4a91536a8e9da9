package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/services"
	"github.com/campusplace/backend/internal/middleware"
)

// ApplicationController handles the caller's application history
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// ListMine returns the caller's applications
// @Summary List own applications
// @Description Lists application snapshots, including ones whose drive has since been deleted.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse} "Applications"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /applications [get]
func (c *ApplicationController) ListMine(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	resp, err := c.applicationService.ListByStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetApplication returns one application snapshot
// @Summary Get an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Students may only read their own snapshots.
	if role, _ := middleware.CurrentRole(ctx); role == models.RoleStudent {
		callerID, _ := middleware.CurrentUserID(ctx)
		if resp.StudentID != callerID {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
