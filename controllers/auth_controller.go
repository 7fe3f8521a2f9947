package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// AuthController handles authentication requests
type AuthController struct {
	BaseControllerImpl
}

// NewAuthController creates a new authentication controller
func (f *ControllerFactory) NewAuthController(ctx *gin.Context) *AuthController {
	return &AuthController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *AuthController) auth() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login authenticates a staff member
// @Summary      Staff login
// @Description  Verify credentials and issue an access/refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body loginRequest true "Login credentials"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req loginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c.Context, "email and password are required")
		return
	}
	pair, err := c.auth().Login(c.Context.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, pair)
}

// Register creates a staff account
// @Summary      Register a staff account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        account body services.RegisterInput true "Account fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /auth/register [post]
// @Security     BearerAuth
func (c *AuthController) Register() {
	var input services.RegisterInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "invalid registration payload")
		return
	}
	user, err := c.auth().Register(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, user)
}

// Refresh rotates the token pair
// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token body refreshRequest true "Refresh token"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /auth/refresh [post]
func (c *AuthController) Refresh() {
	var req refreshRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c.Context, "refresh_token is required")
		return
	}
	pair, err := c.auth().Refresh(c.Context.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, pair)
}

// Logout revokes the caller's refresh token
// @Summary      Logout
// @Tags         Auth
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (c *AuthController) Logout() {
	userID := middleware.CurrentUserID(c.Context)
	if err := c.auth().Logout(c.Context.Request.Context(), userID); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// Profile returns the authenticated account
// @Summary      Current profile
// @Tags         Auth
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (c *AuthController) Profile() {
	user, err := c.auth().Profile(middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, user)
}

// ChangePassword replaces the caller's password
// @Summary      Change password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        passwords body changePasswordRequest true "Current and new password"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /auth/password [put]
// @Security     BearerAuth
func (c *AuthController) ChangePassword() {
	var req changePasswordRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c.Context, "current_password and new_password are required")
		return
	}
	userID := middleware.CurrentUserID(c.Context)
	if err := c.auth().ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleAuthFunc dispatches authentication requests
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewAuthController(ctx)
		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		case "refresh":
			controller.Refresh()
		case "logout":
			controller.Logout()
		case "profile":
			controller.Profile()
		case "changePassword":
			controller.ChangePassword()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
