package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// ServiceController handles organizational service management
type ServiceController struct {
	BaseControllerImpl
}

// NewServiceController creates a new organizational service controller
func (f *ControllerFactory) NewServiceController(ctx *gin.Context) *ServiceController {
	return &ServiceController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *ServiceController) services() services.InterfaceServiceService {
	return c.Container.GetService("service").(services.InterfaceServiceService)
}

// GetServices lists organizational services
// @Summary      List services
// @Tags         Services
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name or description fragment"
// @Success      200 {object} response.Response
// @Router       /services [get]
// @Security     BearerAuth
func (c *ServiceController) GetServices() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	list, total, err := c.services().List(c.Context.Query("search"), p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(list, p.Page, p.Limit, total))
}

// GetService returns one organizational service
// @Summary      Get service
// @Tags         Services
// @Produce      json
// @Param        id path int true "Service ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /services/{id} [get]
// @Security     BearerAuth
func (c *ServiceController) GetService() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	svc, err := c.services().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, svc)
}

// CreateService registers an organizational service
// @Summary      Create service
// @Tags         Services
// @Accept       json
// @Produce      json
// @Param        service body services.ServiceInput true "Service fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /services [post]
// @Security     BearerAuth
func (c *ServiceController) CreateService() {
	var input services.ServiceInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name is required")
		return
	}
	svc, err := c.services().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, svc)
}

// UpdateService replaces service fields
// @Summary      Update service
// @Tags         Services
// @Accept       json
// @Produce      json
// @Param        id path int true "Service ID"
// @Param        service body services.ServiceInput true "Service fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /services/{id} [put]
// @Security     BearerAuth
func (c *ServiceController) UpdateService() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.ServiceInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name is required")
		return
	}
	svc, err := c.services().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, svc)
}

// DeleteService removes a service without visits or appointments
// @Summary      Delete service
// @Tags         Services
// @Produce      json
// @Param        id path int true "Service ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /services/{id} [delete]
// @Security     BearerAuth
func (c *ServiceController) DeleteService() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.services().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// GetServiceActivity reports the service's traffic over a day window
// @Summary      Service activity
// @Tags         Services
// @Produce      json
// @Param        id path int true "Service ID"
// @Param        days query int false "Window in days (default 30)"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /services/{id}/activity [get]
// @Security     BearerAuth
func (c *ServiceController) GetServiceActivity() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	days := int(parseUintQuery(c.Context, "days"))
	activity, err := c.services().Activity(id, days)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, activity)
}

// HandleServiceFunc dispatches organizational service requests
func HandleServiceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewServiceController(ctx)
		switch method {
		case "getServices":
			controller.GetServices()
		case "getService":
			controller.GetService()
		case "createService":
			controller.CreateService()
		case "updateService":
			controller.UpdateService()
		case "getServiceActivity":
			controller.GetServiceActivity()
		case "deleteService":
			controller.DeleteService()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
