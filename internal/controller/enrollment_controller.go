package controller

import (
	"errors"

	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
	QuizService       *service.QuizService
}

func NewEnrollmentController(enrollments *service.EnrollmentService, progress *service.ProgressService, quizzes *service.QuizService) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollments,
		ProgressService:   progress,
		QuizService:       quizzes,
	}
}

// @Summary Enroll the calling user in a course
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCourseNotPublished):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary List the calling user's enrollments with progress
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary Record video progress for a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Param videoId path int true "Video id"
// @Param input body service.VideoProgressInput true "Progress"
// @Router /api/courses/{id}/videos/{videoId}/progress [put]
func (c *EnrollmentController) RecordVideoProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.VideoProgressInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.RecordVideo(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("videoId")),
		input,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrVideoNotInCourse):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// @Summary Submit a quiz attempt for a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Param input body service.QuizSubmissionInput true "Attempt"
// @Router /api/courses/{id}/quiz-results [post]
func (c *EnrollmentController) SubmitQuizResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.QuizSubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitResult(claims.UserID, util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizNotInCourse):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}
