package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ReportService     *service.ReportService
	CompletionService *service.CompletionService
	ExportService     *service.ExportService
}

func NewExportController(reports *service.ReportService, completions *service.CompletionService, exports *service.ExportService) *ExportController {
	return &ExportController{
		ReportService:     reports,
		CompletionService: completions,
		ExportService:     exports,
	}
}

func streamCSV(ctx *gin.Context, name string, payload []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/csv", payload)
}

// @Summary Export the course report as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Router /api/admin/exports/courses [get]
func (c *ExportController) CourseReportCSV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	defer monitoring.ObserveReport("course_export", time.Now())

	var filter model.ReportFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rows, err := c.ReportService.CourseReportRows(ctx.Request.Context(), filter, claims.Scope())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload, err := service.BuildCourseReportCSV(rows)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.ExportService.Archive(ctx.Request.Context(), "course-report", payload, len(rows), claims.UserID)
	streamCSV(ctx, "course-report", payload)
}

// @Summary Export a summary report as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Param kind path string true "ladders or paths"
// @Router /api/admin/exports/summaries/{kind} [get]
func (c *ExportController) SummaryCSV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	kind := ctx.Param("kind")

	var (
		summary *model.SummaryReport
		err     error
	)
	switch kind {
	case "ladders":
		summary, err = c.ReportService.LadderSummary(ctx.Request.Context())
	case "paths":
		summary, err = c.ReportService.PathSummary(ctx.Request.Context())
	default:
		util.BadRequest(ctx, "unknown summary kind")
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload, err := service.BuildSummaryCSV(summary)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	name := kind + "-summary"
	c.ExportService.Archive(ctx.Request.Context(), name, payload, len(summary.Groups), claims.UserID)
	streamCSV(ctx, name, payload)
}

// @Summary Export the on-site completion log as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Router /api/admin/exports/completions [get]
func (c *ExportController) CompletionLogCSV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	q, err := parseLogQuery(ctx, claims)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rows, err := c.CompletionService.ExportRows(q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload, err := service.BuildCompletionLogCSV(rows)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.ExportService.Archive(ctx.Request.Context(), "completion-log", payload, len(rows), claims.UserID)
	streamCSV(ctx, "completion-log", payload)
}

// @Summary List stored export archives
// @Tags exports
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Max archives to return"
// @Success 200 {object} util.Response
// @Router /api/admin/exports/archives [get]
func (c *ExportController) ListArchives(ctx *gin.Context) {
	archives, err := c.ExportService.ListArchives(int(util.MustParseUint(ctx.Query("limit"))))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, archives)
}

// @Summary Download a stored export archive
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Param id path int true "Archive id"
// @Router /api/admin/exports/archives/{id} [get]
func (c *ExportController) DownloadArchive(ctx *gin.Context) {
	archive, reader, err := c.ExportService.OpenArchive(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrArchiveNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archive.ObjectKey))
	ctx.Data(http.StatusOK, "text/csv", payload)
}
