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

// VisitController handles the visit lifecycle
type VisitController struct {
	BaseControllerImpl
}

// NewVisitController creates a new visit controller
func (f *ControllerFactory) NewVisitController(ctx *gin.Context) *VisitController {
	return &VisitController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *VisitController) visits() services.InterfaceVisitService {
	return c.Container.GetService("visit").(services.InterfaceVisitService)
}

// CheckIn opens a visit
// @Summary      Check a visitor in
// @Description  Runs the admission chain and opens a visit when every check passes
// @Tags         Visits
// @Accept       json
// @Produce      json
// @Param        visit body services.CheckInInput true "Check-in fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      403 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visits/checkin [post]
// @Security     BearerAuth
func (c *VisitController) CheckIn() {
	var input services.CheckInInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "visitor_id, checkpoint_id and service_id are required")
		return
	}
	visit, err := c.visits().CheckIn(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, visit)
}

// CheckOut closes a visit
// @Summary      Check a visitor out
// @Description  Closes the visit at end_at when given, otherwise at the current time
// @Tags         Visits
// @Accept       json
// @Produce      json
// @Param        id path int true "Visit ID"
// @Param        checkout body services.CheckOutInput false "Optional explicit end time"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visits/{id}/checkout [put]
// @Security     BearerAuth
func (c *VisitController) CheckOut() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.CheckOutInput
	if c.Context.Request.ContentLength > 0 {
		if err := c.Context.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c.Context, "end_at must be an RFC 3339 timestamp")
			return
		}
	}
	visit, err := c.visits().CheckOut(id, input.EndAt)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, visit)
}

// GetVisits lists visits
// @Summary      List visits
// @Tags         Visits
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        status query string false "all, active or completed"
// @Param        visitor_id query int false "Filter by visitor"
// @Param        checkpoint_id query int false "Filter by checkpoint"
// @Param        service_id query int false "Filter by service"
// @Param        search query string false "Visitor name fragment"
// @Success      200 {object} response.Response
// @Router       /visits [get]
// @Security     BearerAuth
func (c *VisitController) GetVisits() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	filter := store.VisitFilter{
		VisitorID:    parseUintQuery(c.Context, "visitor_id"),
		CheckpointID: parseUintQuery(c.Context, "checkpoint_id"),
		ServiceID:    parseUintQuery(c.Context, "service_id"),
		Status:       c.Context.Query("status"),
		Search:       c.Context.Query("search"),
	}
	visits, total, err := c.visits().List(filter, p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(visits, p.Page, p.Limit, total))
}

// GetVisit returns one visit
// @Summary      Get visit
// @Tags         Visits
// @Produce      json
// @Param        id path int true "Visit ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visits/{id} [get]
// @Security     BearerAuth
func (c *VisitController) GetVisit() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	visit, err := c.visits().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, visit)
}

// GetActiveVisits lists everyone currently inside
// @Summary      List active visits
// @Tags         Visits
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /visits/active [get]
// @Security     BearerAuth
func (c *VisitController) GetActiveVisits() {
	visits, err := c.visits().ListActive()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, visits)
}

// DeleteVisit removes a visit record
// @Summary      Delete visit
// @Tags         Visits
// @Produce      json
// @Param        id path int true "Visit ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /visits/{id} [delete]
// @Security     BearerAuth
func (c *VisitController) DeleteVisit() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.visits().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// GetVisitStats aggregates the ledger
// @Summary      Visit statistics
// @Tags         Visits
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /visits/stats [get]
// @Security     BearerAuth
func (c *VisitController) GetVisitStats() {
	stats, err := c.visits().Stats()
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, stats)
}

// HandleVisitFunc dispatches visit requests
func HandleVisitFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewVisitController(ctx)
		switch method {
		case "checkIn":
			controller.CheckIn()
		case "checkOut":
			controller.CheckOut()
		case "getVisits":
			controller.GetVisits()
		case "getVisit":
			controller.GetVisit()
		case "getActiveVisits":
			controller.GetActiveVisits()
		case "deleteVisit":
			controller.DeleteVisit()
		case "getVisitStats":
			controller.GetVisitStats()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
