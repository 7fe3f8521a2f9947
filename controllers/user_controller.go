package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// UserController handles staff account administration
type UserController struct {
	BaseControllerImpl
}

// NewUserController creates a new user controller
func (f *ControllerFactory) NewUserController(ctx *gin.Context) *UserController {
	return &UserController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *UserController) users() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

// GetUsers lists staff accounts
// @Summary      List staff accounts
// @Tags         Users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name or email fragment"
// @Param        role query string false "Role filter"
// @Success      200 {object} response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	users, total, err := c.users().List(c.Context.Query("search"), c.Context.Query("role"), p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(users, p.Page, p.Limit, total))
}

// GetUser returns one staff account
// @Summary      Get staff account
// @Tags         Users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	user, err := c.users().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, user)
}

// UpdateUser replaces staff account fields
// @Summary      Update staff account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        user body services.UserUpdateInput true "Account fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.UserUpdateInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "email, first_name, last_name and role are required")
		return
	}
	user, err := c.users().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, user)
}

// DeleteUser removes a staff account
// @Summary      Delete staff account
// @Tags         Users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.users().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleUserFunc dispatches staff account requests
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewUserController(ctx)
		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
