package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// SiteController handles site management
type SiteController struct {
	BaseControllerImpl
}

// NewSiteController creates a new site controller
func (f *ControllerFactory) NewSiteController(ctx *gin.Context) *SiteController {
	return &SiteController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *SiteController) sites() services.InterfaceSiteService {
	return c.Container.GetService("site").(services.InterfaceSiteService)
}

// GetSites lists sites
// @Summary      List sites
// @Tags         Sites
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name or location fragment"
// @Success      200 {object} response.Response
// @Router       /sites [get]
// @Security     BearerAuth
func (c *SiteController) GetSites() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	sites, total, err := c.sites().List(c.Context.Query("search"), p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(sites, p.Page, p.Limit, total))
}

// GetSite returns one site
// @Summary      Get site
// @Tags         Sites
// @Produce      json
// @Param        id path int true "Site ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sites/{id} [get]
// @Security     BearerAuth
func (c *SiteController) GetSite() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	site, err := c.sites().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, site)
}

// CreateSite registers a site
// @Summary      Create site
// @Tags         Sites
// @Accept       json
// @Produce      json
// @Param        site body services.SiteInput true "Site fields"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /sites [post]
// @Security     BearerAuth
func (c *SiteController) CreateSite() {
	var input services.SiteInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name is required")
		return
	}
	site, err := c.sites().Create(input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, site)
}

// UpdateSite replaces site fields
// @Summary      Update site
// @Tags         Sites
// @Accept       json
// @Produce      json
// @Param        id path int true "Site ID"
// @Param        site body services.SiteInput true "Site fields"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sites/{id} [put]
// @Security     BearerAuth
func (c *SiteController) UpdateSite() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	var input services.SiteInput
	if err := c.Context.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c.Context, "name is required")
		return
	}
	site, err := c.sites().Update(id, input)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, site)
}

// DeleteSite removes a site without checkpoints
// @Summary      Delete site
// @Tags         Sites
// @Produce      json
// @Param        id path int true "Site ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /sites/{id} [delete]
// @Security     BearerAuth
func (c *SiteController) DeleteSite() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.sites().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleSiteFunc dispatches site requests
func HandleSiteFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewSiteController(ctx)
		switch method {
		case "getSites":
			controller.GetSites()
		case "getSite":
			controller.GetSite()
		case "createSite":
			controller.CreateSite()
		case "updateSite":
			controller.UpdateSite()
		case "deleteSite":
			controller.DeleteSite()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
