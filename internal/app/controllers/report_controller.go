package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/services"
	"github.com/campusplace/backend/internal/middleware"
)

// ReportController serves spreadsheet and PDF downloads
type ReportController struct {
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

func (c *ReportController) sendFile(ctx *gin.Context, buf *bytes.Buffer, filename string, format services.ReportFormat) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// StudentRoster downloads the full student roster
// @Summary Export the student roster
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary "Roster file"
// @Failure 403 {object} dto.ErrorResponse "Caller is not staff"
// @Router /reports/students [get]
func (c *ReportController) StudentRoster(ctx *gin.Context) {
	format, err := services.ParseReportFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	buf, filename, err := c.reportService.StudentRoster(ctx.Request.Context(), format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.sendFile(ctx, buf, filename, format)
}

// DriveApplications downloads one drive's applicant list
// @Summary Export a drive's applicants
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary "Applicants file"
// @Router /reports/drives/{id}/applications [get]
func (c *ReportController) DriveApplications(ctx *gin.Context) {
	driveID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	format, err := services.ParseReportFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	buf, filename, err := c.reportService.DriveApplications(ctx.Request.Context(), driveID, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.sendFile(ctx, buf, filename, format)
}

// MyApplications downloads the caller's application history
// @Summary Export own applications
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary "Applications file"
// @Router /reports/applications [get]
func (c *ReportController) MyApplications(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	format, err := services.ParseReportFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	buf, filename, err := c.reportService.StudentApplications(ctx.Request.Context(), studentID, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.sendFile(ctx, buf, filename, format)
}
