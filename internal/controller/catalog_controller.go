package controller

import (
	"errors"

	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController covers the small admin-managed lookup entities: ladders,
// learning paths and campuses.
type CatalogController struct {
	LadderService *service.LadderService
	GroupService  *service.CourseGroupService
	CampusService *service.CampusService
}

func NewCatalogController(ladders *service.LadderService, groups *service.CourseGroupService, campuses *service.CampusService) *CatalogController {
	return &CatalogController{
		LadderService: ladders,
		GroupService:  groups,
		CampusService: campuses,
	}
}

// @Summary List ladders in display order
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/ladders [get]
func (c *CatalogController) ListLadders(ctx *gin.Context) {
	ladders, err := c.LadderService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ladders)
}

// @Summary Create a ladder
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.LadderInput true "Ladder"
// @Success 201 {object} util.Response
// @Router /api/admin/ladders [post]
func (c *CatalogController) CreateLadder(ctx *gin.Context) {
	var input service.LadderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ladder, err := c.LadderService.Create(input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, ladder)
}

// @Summary Update a ladder
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Ladder id"
// @Param input body service.LadderInput true "Ladder"
// @Success 200 {object} util.Response
// @Router /api/admin/ladders/{id} [put]
func (c *CatalogController) UpdateLadder(ctx *gin.Context) {
	var input service.LadderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ladder, err := c.LadderService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrLadderNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ladder)
}

// @Summary Delete a ladder
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Ladder id"
// @Success 200 {object} util.Response
// @Router /api/admin/ladders/{id} [delete]
func (c *CatalogController) DeleteLadder(ctx *gin.Context) {
	if err := c.LadderService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List learning paths
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/course-groups [get]
func (c *CatalogController) ListGroups(ctx *gin.Context) {
	groups, err := c.GroupService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// @Summary Create a learning path
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.CourseGroupInput true "Learning path"
// @Success 201 {object} util.Response
// @Router /api/admin/course-groups [post]
func (c *CatalogController) CreateGroup(ctx *gin.Context) {
	var input service.CourseGroupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	group, err := c.GroupService.Create(input)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, group)
}

// @Summary Update a learning path
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Learning path id"
// @Param input body service.CourseGroupInput true "Learning path"
// @Success 200 {object} util.Response
// @Router /api/admin/course-groups/{id} [put]
func (c *CatalogController) UpdateGroup(ctx *gin.Context) {
	var input service.CourseGroupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	group, err := c.GroupService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrCourseGroupNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrCourseNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// @Summary Delete a learning path
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Learning path id"
// @Success 200 {object} util.Response
// @Router /api/admin/course-groups/{id} [delete]
func (c *CatalogController) DeleteGroup(ctx *gin.Context) {
	if err := c.GroupService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List campuses
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/campuses [get]
func (c *CatalogController) ListCampuses(ctx *gin.Context) {
	campuses, err := c.CampusService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campuses)
}

// @Summary Create a campus
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/admin/campuses [post]
func (c *CatalogController) CreateCampus(ctx *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	campus, err := c.CampusService.Create(input.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, campus)
}

// @Summary Rename a campus
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Campus id"
// @Success 200 {object} util.Response
// @Router /api/admin/campuses/{id} [put]
func (c *CatalogController) UpdateCampus(ctx *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	campus, err := c.CampusService.Update(util.MustParseUint(ctx.Param("id")), input.Name)
	if err != nil {
		if errors.Is(err, util.ErrCampusNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campus)
}

// @Summary Delete a campus
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Campus id"
// @Success 200 {object} util.Response
// @Router /api/admin/campuses/{id} [delete]
func (c *CatalogController) DeleteCampus(ctx *gin.Context) {
	if err := c.CampusService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
