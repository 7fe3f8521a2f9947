package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// StatsController serves the dashboard snapshot
type StatsController struct {
	BaseControllerImpl
}

// NewStatsController creates a new statistics controller
func (f *ControllerFactory) NewStatsController(ctx *gin.Context) *StatsController {
	return &StatsController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetDashboard returns the aggregate snapshot
// @Summary      Dashboard statistics
// @Tags         Stats
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /stats/dashboard [get]
// @Security     BearerAuth
func (c *StatsController) GetDashboard() {
	stats, err := c.Container.GetService("stats").(services.InterfaceStatsService).Dashboard()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, stats)
}

// HandleStatsFunc dispatches statistics requests
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewStatsController(ctx)
		switch method {
		case "getDashboard":
			controller.GetDashboard()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
