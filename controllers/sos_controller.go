package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
)

// SOSController handles panic alerts
type SOSController struct {
	BaseControllerImpl
}

// NewSOSController creates a new SOS controller
func (f *ControllerFactory) NewSOSController(ctx *gin.Context) *SOSController {
	return &SOSController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *SOSController) sos() services.InterfaceSOSService {
	return c.Container.GetService("sos").(services.InterfaceSOSService)
}

// Trigger raises an alert
// @Summary      Trigger an SOS alert
// @Description  Stores the alert and dispatches it to the security channel; a checkpoint with an unresolved alert rejects new triggers
// @Tags         SOS
// @Accept       json
// @Produce      json
// @Param        alert body services.SOSInput true "Alert fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sos [post]
// @Security     BearerAuth
func (c *SOSController) Trigger() {
	var input services.SOSInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "checkpoint_id is required")
		return
	}
	result, err := c.sos().Trigger(input, middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, result)
}

// Resolve closes an alert
// @Summary      Resolve an SOS alert
// @Tags         SOS
// @Produce      json
// @Param        id path int true "Alert ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sos/{id}/resolve [put]
// @Security     BearerAuth
func (c *SOSController) Resolve() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	alert, err := c.sos().Resolve(id, middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, alert)
}

// GetAlerts lists alerts
// @Summary      List SOS alerts
// @Tags         SOS
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        checkpoint_id query int false "Filter by checkpoint"
// @Param        active query bool false "Filter by active state"
// @Success      200 {object} response.Response
// @Router       /sos [get]
// @Security     BearerAuth
func (c *SOSController) GetAlerts() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	filter := store.SOSFilter{
		CheckpointID: parseUintQuery(c.Context, "checkpoint_id"),
	}
	if raw := c.Context.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c.Context, "active must be true or false")
			return
		}
		filter.Active = &active
	}
	alerts, total, err := c.sos().List(filter, p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(alerts, p.Page, p.Limit, total))
}

// GetAlert returns one alert
// @Summary      Get SOS alert
// @Tags         SOS
// @Produce      json
// @Param        id path int true "Alert ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sos/{id} [get]
// @Security     BearerAuth
func (c *SOSController) GetAlert() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	alert, err := c.sos().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, alert)
}

// GetActiveAlerts lists unresolved alerts
// @Summary      List active SOS alerts
// @Tags         SOS
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /sos/active [get]
// @Security     BearerAuth
func (c *SOSController) GetActiveAlerts() {
	alerts, err := c.sos().ListActive()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, alerts)
}

// GetSOSStats aggregates alerts
// @Summary      SOS statistics
// @Tags         SOS
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /sos/stats [get]
// @Security     BearerAuth
func (c *SOSController) GetSOSStats() {
	stats, err := c.sos().Stats()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, stats)
}

// HandleSOSFunc dispatches SOS requests
func HandleSOSFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewSOSController(ctx)
		switch method {
		case "trigger":
			controller.Trigger()
		case "resolve":
			controller.Resolve()
		case "getAlerts":
			controller.GetAlerts()
		case "getAlert":
			controller.GetAlert()
		case "getActiveAlerts":
			controller.GetActiveAlerts()
		case "getSOSStats":
			controller.GetSOSStats()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
