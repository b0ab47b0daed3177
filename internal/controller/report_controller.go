package controller

import (
	"context"
	"strconv"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportProvider is what the handlers need from the report service.
type ReportProvider interface {
	CourseReport(ctx context.Context, filter model.ReportFilter, scope model.Scope, page, perPage int) (*model.ReportPage, error)
	LadderSummary(ctx context.Context) (*model.SummaryReport, error)
	PathSummary(ctx context.Context) (*model.SummaryReport, error)
}

type ReportController struct {
	Reports ReportProvider
}

func NewReportController(reports ReportProvider) *ReportController {
	return &ReportController{Reports: reports}
}

// @Summary Course completion report
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int false "Single course filter"
// @Param courseGroupId query int false "Learning path filter"
// @Param campus query string false "Campus filter (forced to own campus without the all-campuses capability)"
// @Param status query string false "Completed or In Progress"
// @Param completionType query string false "Online or On-site"
// @Param bucket query string false "Progress bucket"
// @Param from query string false "Inclusive start day (YYYY-MM-DD)"
// @Param to query string false "Inclusive end day (YYYY-MM-DD)"
// @Param search query string false "Name or email substring"
// @Param page query int false "1-based page"
// @Param perPage query int false "Rows per page"
// @Success 200 {object} util.Response
// @Router /api/admin/reports/courses [get]
func (c *ReportController) CourseReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var filter model.ReportFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("perPage", "0"))

	report, err := c.Reports.CourseReport(ctx.Request.Context(), filter, claims.Scope(), page, perPage)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Ladder completion summary
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/reports/ladders [get]
func (c *ReportController) LadderSummary(ctx *gin.Context) {
	summary, err := c.Reports.LadderSummary(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Learning path completion summary
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/reports/paths [get]
func (c *ReportController) PathSummary(ctx *gin.Context) {
	summary, err := c.Reports.PathSummary(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
