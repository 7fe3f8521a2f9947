package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
)

// AppointmentController handles appointment scheduling
type AppointmentController struct {
	BaseControllerImpl
}

// NewAppointmentController creates a new appointment controller
func (f *ControllerFactory) NewAppointmentController(ctx *gin.Context) *AppointmentController {
	return &AppointmentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *AppointmentController) appointments() services.InterfaceAppointmentService {
	return c.Container.GetService("appointment").(services.InterfaceAppointmentService)
}

// GetAppointments lists appointments
// @Summary      List appointments
// @Tags         Appointments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        visitor_id query int false "Filter by visitor"
// @Param        service_id query int false "Filter by service"
// @Param        search query string false "Person visited or visitor name fragment"
// @Param        upcoming query bool false "Only future appointments"
// @Success      200 {object} response.Response
// @Router       /appointments [get]
// @Security     BearerAuth
func (c *AppointmentController) GetAppointments() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	upcoming, _ := strconv.ParseBool(c.Context.Query("upcoming"))
	filter := store.AppointmentFilter{
		VisitorID: parseUintQuery(c.Context, "visitor_id"),
		ServiceID: parseUintQuery(c.Context, "service_id"),
		Search:    c.Context.Query("search"),
		Upcoming:  upcoming,
	}
	appointments, total, err := c.appointments().List(filter, p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(appointments, p.Page, p.Limit, total))
}

// GetAppointment returns one appointment
// @Summary      Get appointment
// @Tags         Appointments
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /appointments/{id} [get]
// @Security     BearerAuth
func (c *AppointmentController) GetAppointment() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	appointment, err := c.appointments().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, appointment)
}

// CreateAppointment schedules an appointment
// @Summary      Create appointment
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        appointment body services.AppointmentInput true "Appointment fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      403 {object} response.Response
// @Router       /appointments [post]
// @Security     BearerAuth
func (c *AppointmentController) CreateAppointment() {
	var input services.AppointmentInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "visitor_id, service_id, date_start and date_end are required")
		return
	}
	appointment, err := c.appointments().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, appointment)
}

// UpdateAppointment reschedules an appointment
// @Summary      Update appointment
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Param        appointment body services.AppointmentInput true "Appointment fields"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /appointments/{id} [put]
// @Security     BearerAuth
func (c *AppointmentController) UpdateAppointment() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.AppointmentInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "visitor_id, service_id, date_start and date_end are required")
		return
	}
	appointment, err := c.appointments().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, appointment)
}

// ValidateAppointment approves a pending appointment
// @Summary      Validate appointment
// @Tags         Appointments
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /appointments/{id}/validate [put]
// @Security     BearerAuth
func (c *AppointmentController) ValidateAppointment() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	appointment, err := c.appointments().Validate(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, appointment)
}

// CancelAppointment cancels an appointment
// @Summary      Cancel appointment
// @Tags         Appointments
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /appointments/{id}/cancel [put]
// @Security     BearerAuth
func (c *AppointmentController) CancelAppointment() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	appointment, err := c.appointments().Cancel(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, appointment)
}

// DeleteAppointment removes an appointment
// @Summary      Delete appointment
// @Tags         Appointments
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /appointments/{id} [delete]
// @Security     BearerAuth
func (c *AppointmentController) DeleteAppointment() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.appointments().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleAppointmentFunc dispatches appointment requests
func HandleAppointmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewAppointmentController(ctx)
		switch method {
		case "getAppointments":
			controller.GetAppointments()
		case "getAppointment":
			controller.GetAppointment()
		case "createAppointment":
			controller.CreateAppointment()
		case "updateAppointment":
			controller.UpdateAppointment()
		case "validateAppointment":
			controller.ValidateAppointment()
		case "cancelAppointment":
			controller.CancelAppointment()
		case "deleteAppointment":
			controller.DeleteAppointment()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
