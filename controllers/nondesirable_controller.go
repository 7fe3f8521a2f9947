package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// NonDesirableController handles blacklist requests
type NonDesirableController struct {
	BaseControllerImpl
}

// NewNonDesirableController creates a new blacklist controller
func (f *ControllerFactory) NewNonDesirableController(ctx *gin.Context) *NonDesirableController {
	return &NonDesirableController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *NonDesirableController) blacklist() services.InterfaceNonDesirableService {
	return c.Container.GetService("nondesirable").(services.InterfaceNonDesirableService)
}

// Blacklist puts a visitor on the blacklist
// @Summary      Blacklist a visitor
// @Tags         Blacklist
// @Accept       json
// @Produce      json
// @Param        entry body services.BlacklistInput true "Blacklist fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /nondesirables [post]
// @Security     BearerAuth
func (c *NonDesirableController) Blacklist() {
	var input services.BlacklistInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "visitor_id and reason are required")
		return
	}
	entry, err := c.blacklist().Blacklist(input, middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, entry)
}

// Unblacklist removes an entry
// @Summary      Remove a blacklist entry
// @Tags         Blacklist
// @Produce      json
// @Param        id path int true "Entry ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /nondesirables/{id} [delete]
// @Security     BearerAuth
func (c *NonDesirableController) Unblacklist() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.blacklist().Unblacklist(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// GetEntries lists the blacklist
// @Summary      List blacklist entries
// @Tags         Blacklist
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Reason or visitor name fragment"
// @Success      200 {object} response.Response
// @Router       /nondesirables [get]
// @Security     BearerAuth
func (c *NonDesirableController) GetEntries() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	entries, total, err := c.blacklist().List(c.Context.Query("search"), p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(entries, p.Page, p.Limit, total))
}

// GetEntry returns one entry
// @Summary      Get blacklist entry
// @Tags         Blacklist
// @Produce      json
// @Param        id path int true "Entry ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /nondesirables/{id} [get]
// @Security     BearerAuth
func (c *NonDesirableController) GetEntry() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	entry, err := c.blacklist().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, entry)
}

// GetStatus derives a visitor's blacklist state
// @Summary      Blacklist status of a visitor
// @Tags         Blacklist
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /nondesirables/status/{id} [get]
// @Security     BearerAuth
func (c *NonDesirableController) GetStatus() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	status, err := c.blacklist().Status(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, status)
}

// HandleNonDesirableFunc dispatches blacklist requests
func HandleNonDesirableFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewNonDesirableController(ctx)
		switch method {
		case "blacklist":
			controller.Blacklist()
		case "unblacklist":
			controller.Unblacklist()
		case "getEntries":
			controller.GetEntries()
		case "getEntry":
			controller.GetEntry()
		case "getStatus":
			controller.GetStatus()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
