package controller

import (
	"errors"

	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FormController struct {
	FormService *service.FormService
}

func NewFormController(forms *service.FormService) *FormController {
	return &FormController{FormService: forms}
}

// @Summary List published forms
// @Tags forms
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/forms [get]
func (c *FormController) ListPublished(ctx *gin.Context) {
	forms, err := c.FormService.List(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, forms)
}

// @Summary Get a form with its fields
// @Tags forms
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Form id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [get]
func (c *FormController) GetByID(ctx *gin.Context) {
	form, err := c.FormService.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrFormNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, form)
}

// @Summary Submit a form
// @Tags forms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Form id"
// @Success 201 {object} util.Response
// @Router /api/forms/{id}/submissions [post]
func (c *FormController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input struct {
		Answers map[uint]string `json:"answers" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.FormService.Submit(util.MustParseUint(ctx.Param("id")), claims.UserID, input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFormNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrFormNotPublished), errors.Is(err, util.ErrMissingRequiredField):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// @Summary List all forms including drafts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/forms [get]
func (c *FormController) ListAll(ctx *gin.Context) {
	forms, err := c.FormService.List(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, forms)
}

// @Summary Create a form
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.FormInput true "Form"
// @Success 201 {object} util.Response
// @Router /api/admin/forms [post]
func (c *FormController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.FormInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.FormService.Create(input, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, form)
}

// @Summary Update a form
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Form id"
// @Param input body service.FormInput true "Form"
// @Success 200 {object} util.Response
// @Router /api/admin/forms/{id} [put]
func (c *FormController) Update(ctx *gin.Context) {
	var input service.FormInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.FormService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrFormNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, form)
}

// @Summary Delete a form
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Form id"
// @Success 200 {object} util.Response
// @Router /api/admin/forms/{id} [delete]
func (c *FormController) Delete(ctx *gin.Context) {
	if err := c.FormService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List a form's submissions
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Form id"
// @Success 200 {object} util.Response
// @Router /api/admin/forms/{id}/submissions [get]
func (c *FormController) ListSubmissions(ctx *gin.Context) {
	submissions, err := c.FormService.ListSubmissions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}
