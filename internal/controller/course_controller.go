package controller

import (
	"errors"

	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary List published courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListPublished(ctx *gin.Context) {
	courses, err := c.CourseService.ListPublished()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Get course detail
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	course, err := c.CourseService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary List all courses including drafts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (c *CourseController) ListAll(ctx *gin.Context) {
	courses, err := c.CourseService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.CourseInput true "Course"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(input)
	if err != nil {
		if errors.Is(err, util.ErrLadderNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Param input body service.CourseInput true "Course"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(id, input)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrLadderNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
