package controller

import (
	"errors"

	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary Update own profile
// @Description Settings-page self-edit; password change requires the old password
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body service.UpdateProfileInput true "Profile changes"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.BadRequest(ctx, err.Error())
			return
		}
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// @Summary Assign role/campus/ladder to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User id"
// @Param input body service.AssignUserInput true "Assignment"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *UserController) AssignUser(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var input service.AssignUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.AssignUser(userID, input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// @Summary List users
// @Description Scoped to the caller's campus unless they can view all campuses
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param campus query string false "Campus filter"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scope := claims.Scope()
	campus := ctx.Query("campus")
	if !scope.CanViewAllCampuses {
		campus = scope.OwnCampus
	}

	users, err := c.UserService.List(campus)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}
