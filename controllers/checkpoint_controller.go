package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// CheckpointController handles checkpoint management
type CheckpointController struct {
	BaseControllerImpl
}

// NewCheckpointController creates a new checkpoint controller
func (f *ControllerFactory) NewCheckpointController(ctx *gin.Context) *CheckpointController {
	return &CheckpointController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *CheckpointController) checkpoints() services.InterfaceCheckpointService {
	return c.Container.GetService("checkpoint").(services.InterfaceCheckpointService)
}

// GetCheckpoints lists checkpoints
// @Summary      List checkpoints
// @Tags         Checkpoints
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name or SOS identifier fragment"
// @Param        site_id query int false "Filter by site"
// @Success      200 {object} response.Response
// @Router       /checkpoints [get]
// @Security     BearerAuth
func (c *CheckpointController) GetCheckpoints() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	checkpoints, total, err := c.checkpoints().List(
		c.Context.Query("search"),
		parseUintQuery(c.Context, "site_id"),
		p,
	)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(checkpoints, p.Page, p.Limit, total))
}

// GetCheckpoint returns one checkpoint
// @Summary      Get checkpoint
// @Tags         Checkpoints
// @Produce      json
// @Param        id path int true "Checkpoint ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /checkpoints/{id} [get]
// @Security     BearerAuth
func (c *CheckpointController) GetCheckpoint() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	checkpoint, err := c.checkpoints().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, checkpoint)
}

// CreateCheckpoint registers a checkpoint
// @Summary      Create checkpoint
// @Tags         Checkpoints
// @Accept       json
// @Produce      json
// @Param        checkpoint body services.CheckpointInput true "Checkpoint fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /checkpoints [post]
// @Security     BearerAuth
func (c *CheckpointController) CreateCheckpoint() {
	var input services.CheckpointInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name, site_id and sos_identifier are required")
		return
	}
	checkpoint, err := c.checkpoints().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, checkpoint)
}

// UpdateCheckpoint replaces checkpoint fields
// @Summary      Update checkpoint
// @Tags         Checkpoints
// @Accept       json
// @Produce      json
// @Param        id path int true "Checkpoint ID"
// @Param        checkpoint body services.CheckpointInput true "Checkpoint fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /checkpoints/{id} [put]
// @Security     BearerAuth
func (c *CheckpointController) UpdateCheckpoint() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.CheckpointInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name, site_id and sos_identifier are required")
		return
	}
	checkpoint, err := c.checkpoints().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, checkpoint)
}

// DeleteCheckpoint removes a checkpoint without visit history
// @Summary      Delete checkpoint
// @Tags         Checkpoints
// @Produce      json
// @Param        id path int true "Checkpoint ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /checkpoints/{id} [delete]
// @Security     BearerAuth
func (c *CheckpointController) DeleteCheckpoint() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.checkpoints().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleCheckpointFunc dispatches checkpoint requests
func HandleCheckpointFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewCheckpointController(ctx)
		switch method {
		case "getCheckpoints":
			controller.GetCheckpoints()
		case "getCheckpoint":
			controller.GetCheckpoint()
		case "createCheckpoint":
			controller.CreateCheckpoint()
		case "updateCheckpoint":
			controller.UpdateCheckpoint()
		case "deleteCheckpoint":
			controller.DeleteCheckpoint()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
