package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
)

// VisitorController handles visitor registry requests
type VisitorController struct {
	BaseControllerImpl
}

// NewVisitorController creates a new visitor controller
func (f *ControllerFactory) NewVisitorController(ctx *gin.Context) *VisitorController {
	return &VisitorController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *VisitorController) visitors() services.InterfaceVisitorService {
	return c.Container.GetService("visitor").(services.InterfaceVisitorService)
}

// GetVisitors lists visitors
// @Summary      List visitors
// @Tags         Visitors
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name, email or phone fragment"
// @Param        company query string false "Exact company filter"
// @Success      200 {object} response.Response
// @Router       /visitors [get]
// @Security     BearerAuth
func (c *VisitorController) GetVisitors() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	filter := store.VisitorFilter{
		Search:  c.Context.Query("search"),
		Company: c.Context.Query("company"),
	}
	visitors, total, err := c.visitors().List(filter, p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(visitors, p.Page, p.Limit, total))
}

// GetVisitor returns one visitor with derived state
// @Summary      Get visitor
// @Tags         Visitors
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visitors/{id} [get]
// @Security     BearerAuth
func (c *VisitorController) GetVisitor() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	detail, err := c.visitors().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, detail)
}

// CreateVisitor registers a visitor
// @Summary      Register visitor
// @Tags         Visitors
// @Accept       json
// @Produce      json
// @Param        visitor body services.VisitorInput true "Visitor fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /visitors [post]
// @Security     BearerAuth
func (c *VisitorController) CreateVisitor() {
	var input services.VisitorInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "firstname and lastname are required")
		return
	}
	visitor, err := c.visitors().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, visitor)
}

// UpdateVisitor replaces visitor fields
// @Summary      Update visitor
// @Tags         Visitors
// @Accept       json
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Param        visitor body services.VisitorInput true "Visitor fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visitors/{id} [put]
// @Security     BearerAuth
func (c *VisitorController) UpdateVisitor() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.VisitorInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "firstname and lastname are required")
		return
	}
	visitor, err := c.visitors().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, visitor)
}

// DeleteVisitor removes a visitor without visit history
// @Summary      Delete visitor
// @Tags         Visitors
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visitors/{id} [delete]
// @Security     BearerAuth
func (c *VisitorController) DeleteVisitor() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.visitors().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// GetVisitorHistory returns the visitor's activity over a day window
// @Summary      Visitor history
// @Tags         Visitors
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Param        days query int false "Window in days (default 30)"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visitors/{id}/history [get]
// @Security     BearerAuth
func (c *VisitorController) GetVisitorHistory() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	days := int(parseUintQuery(c.Context, "days"))
	history, err := c.visitors().History(id, days)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, history)
}

// GetVisitorStats aggregates the registry
// @Summary      Visitor statistics
// @Tags         Visitors
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /visitors/stats [get]
// @Security     BearerAuth
func (c *VisitorController) GetVisitorStats() {
	stats, err := c.visitors().Stats()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, stats)
}

// HandleVisitorFunc dispatches visitor requests
func HandleVisitorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewVisitorController(ctx)
		switch method {
		case "getVisitors":
			controller.GetVisitors()
		case "getVisitor":
			controller.GetVisitor()
		case "createVisitor":
			controller.CreateVisitor()
		case "updateVisitor":
			controller.UpdateVisitor()
		case "deleteVisitor":
			controller.DeleteVisitor()
		case "getVisitorHistory":
			controller.GetVisitorHistory()
		case "getVisitorStats":
			controller.GetVisitorStats()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
