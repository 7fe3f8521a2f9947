package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
)

// IncidentController handles incident reports
type IncidentController struct {
	BaseControllerImpl
}

// NewIncidentController creates a new incident controller
func (f *ControllerFactory) NewIncidentController(ctx *gin.Context) *IncidentController {
	return &IncidentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *IncidentController) incidents() services.InterfaceIncidentService {
	return c.Container.GetService("incident").(services.InterfaceIncidentService)
}

type resolveRequest struct {
	Note string `json:"note"`
}

// ReportIncident files an incident
// @Summary      Report an incident
// @Description  Files an incident; reaching the incident threshold blacklists the visitor automatically
// @Tags         Incidents
// @Accept       json
// @Produce      json
// @Param        incident body services.IncidentInput true "Incident fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /incidents [post]
// @Security     BearerAuth
func (c *IncidentController) ReportIncident() {
	var input services.IncidentInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "visitor_id, service_id and reason are required")
		return
	}
	report, err := c.incidents().Report(input, middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, report)
}

// GetIncidents lists incidents
// @Summary      List incidents
// @Tags         Incidents
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        visitor_id query int false "Filter by visitor"
// @Param        service_id query int false "Filter by service"
// @Param        search query string false "Reason or description fragment"
// @Success      200 {object} response.Response
// @Router       /incidents [get]
// @Security     BearerAuth
func (c *IncidentController) GetIncidents() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	filter := store.IncidentFilter{
		VisitorID: parseUintQuery(c.Context, "visitor_id"),
		ServiceID: parseUintQuery(c.Context, "service_id"),
		Search:    c.Context.Query("search"),
	}
	incidents, total, err := c.incidents().List(filter, p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(incidents, p.Page, p.Limit, total))
}

// GetIncident returns one incident
// @Summary      Get incident
// @Tags         Incidents
// @Produce      json
// @Param        id path int true "Incident ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /incidents/{id} [get]
// @Security     BearerAuth
func (c *IncidentController) GetIncident() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	incident, err := c.incidents().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, incident)
}

// ResolveIncident closes an incident
// @Summary      Resolve incident
// @Tags         Incidents
// @Accept       json
// @Produce      json
// @Param        id path int true "Incident ID"
// @Param        resolution body resolveRequest false "Resolution note"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /incidents/{id}/resolve [put]
// @Security     BearerAuth
func (c *IncidentController) ResolveIncident() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var req resolveRequest
	_ = c.Context.ShouldBindJSON(&req)
	incident, err := c.incidents().Resolve(id, req.Note)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, incident)
}

// DeleteIncident removes an incident record
// @Summary      Delete incident
// @Tags         Incidents
// @Produce      json
// @Param        id path int true "Incident ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /incidents/{id} [delete]
// @Security     BearerAuth
func (c *IncidentController) DeleteIncident() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.incidents().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// GetVisitorIncidentCount returns a visitor's incident total
// @Summary      Incident count for a visitor
// @Tags         Incidents
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /incidents/visitor/{id}/count [get]
// @Security     BearerAuth
func (c *IncidentController) GetVisitorIncidentCount() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	count, err := c.incidents().CountByVisitor(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, gin.H{"visitor_id": id, "incident_count": count})
}

// HandleIncidentFunc dispatches incident requests
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewIncidentController(ctx)
		switch method {
		case "reportIncident":
			controller.ReportIncident()
		case "getIncidents":
			controller.GetIncidents()
		case "getIncident":
			controller.GetIncident()
		case "resolveIncident":
			controller.ResolveIncident()
		case "deleteIncident":
			controller.DeleteIncident()
		case "getVisitorIncidentCount":
			controller.GetVisitorIncidentCount()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
