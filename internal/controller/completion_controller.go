package controller

import (
	"errors"
	"strconv"
	"time"

	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CompletionController struct {
	CompletionService *service.CompletionService
}

func NewCompletionController(completions *service.CompletionService) *CompletionController {
	return &CompletionController{CompletionService: completions}
}

// parseLogQuery reads the shared filter set. The cursor is the
// (afterTime, afterId) pair of the previous page's last row; both must be
// present for the cursor to apply.
func parseLogQuery(ctx *gin.Context, claims *util.Claims) (repository.CompletionLogQuery, error) {
	q := repository.CompletionLogQuery{
		UserID:   util.MustParseUint(ctx.Query("userId")),
		CourseID: util.MustParseUint(ctx.Query("courseId")),
		Campus:   ctx.Query("campus"),
	}
	if scope := claims.Scope(); !scope.CanViewAllCampuses {
		q.Campus = scope.OwnCampus
	}

	if v := ctx.Query("from"); v != "" {
		t, err := time.ParseInLocation(util.DateFormat, v, time.Local)
		if err != nil {
			return q, err
		}
		q.From = &t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.ParseInLocation(util.DateFormat, v, time.Local)
		if err != nil {
			return q, err
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		q.To = &end
	}

	if at, id := ctx.Query("afterTime"), ctx.Query("afterId"); at != "" && id != "" {
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return q, err
		}
		q.AfterTime = &t
		q.AfterID = id
	}

	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	return q, nil
}

// @Summary Page through the on-site completion log
// @Tags completions
// @Produce json
// @Security ApiKeyAuth
// @Param afterTime query string false "Cursor: completed_at of the previous page's last row (RFC3339)"
// @Param afterId query string false "Cursor: id of the previous page's last row"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/admin/completions [get]
func (c *CompletionController) List(ctx *gin.Context) {
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

	page, err := c.CompletionService.List(ctx.Request.Context(), q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary Log on-site completions for a user
// @Tags completions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.LogCompletionsInput true "Completions"
// @Success 201 {object} util.Response
// @Router /api/admin/completions [post]
func (c *CompletionController) Log(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.LogCompletionsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rows, err := c.CompletionService.LogCompletions(ctx.Request.Context(), input, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrCourseNotFound):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNothingToLog):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, rows)
}

// @Summary Delete selected completion log rows
// @Tags completions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/completions/bulk-delete [post]
func (c *CompletionController) BulkDelete(ctx *gin.Context) {
	var input struct {
		IDs []string `json:"ids" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deleted, err := c.CompletionService.BulkDelete(ctx.Request.Context(), input.IDs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": deleted})
}
