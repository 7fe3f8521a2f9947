package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// AgentController handles control agent management
type AgentController struct {
	BaseControllerImpl
}

// NewAgentController creates a new agent controller
func (f *ControllerFactory) NewAgentController(ctx *gin.Context) *AgentController {
	return &AgentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *AgentController) agents() services.InterfaceAgentService {
	return c.Container.GetService("agent").(services.InterfaceAgentService)
}

// GetAgents lists agents
// @Summary      List agents
// @Tags         Agents
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name or email fragment"
// @Param        checkpoint_id query int false "Filter by checkpoint"
// @Success      200 {object} response.Response
// @Router       /agents [get]
// @Security     BearerAuth
func (c *AgentController) GetAgents() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	agents, total, err := c.agents().List(
		c.Context.Query("search"),
		parseUintQuery(c.Context, "checkpoint_id"),
		p,
	)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(agents, p.Page, p.Limit, total))
}

// GetAgent returns one agent
// @Summary      Get agent
// @Tags         Agents
// @Produce      json
// @Param        id path int true "Agent ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /agents/{id} [get]
// @Security     BearerAuth
func (c *AgentController) GetAgent() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	agent, err := c.agents().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, agent)
}

// CreateAgent registers a control agent
// @Summary      Create agent
// @Tags         Agents
// @Accept       json
// @Produce      json
// @Param        agent body services.AgentInput true "Agent fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /agents [post]
// @Security     BearerAuth
func (c *AgentController) CreateAgent() {
	var input services.AgentInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "firstname, lastname and email are required")
		return
	}
	agent, err := c.agents().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, agent)
}

// UpdateAgent replaces agent fields
// @Summary      Update agent
// @Tags         Agents
// @Accept       json
// @Produce      json
// @Param        id path int true "Agent ID"
// @Param        agent body services.AgentInput true "Agent fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /agents/{id} [put]
// @Security     BearerAuth
func (c *AgentController) UpdateAgent() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.AgentInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "firstname, lastname and email are required")
		return
	}
	agent, err := c.agents().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, agent)
}

// DeleteAgent removes an agent
// @Summary      Delete agent
// @Tags         Agents
// @Produce      json
// @Param        id path int true "Agent ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /agents/{id} [delete]
// @Security     BearerAuth
func (c *AgentController) DeleteAgent() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.agents().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleAgentFunc dispatches agent requests
func HandleAgentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewAgentController(ctx)
		switch method {
		case "getAgents":
			controller.GetAgents()
		case "getAgent":
			controller.GetAgent()
		case "createAgent":
			controller.CreateAgent()
		case "updateAgent":
			controller.UpdateAgent()
		case "deleteAgent":
			controller.DeleteAgent()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
