package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// FileController handles document uploads
type FileController struct {
	BaseControllerImpl
}

// NewFileController creates a new file controller
func (f *ControllerFactory) NewFileController(ctx *gin.Context) *FileController {
	return &FileController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *FileController) files() services.InterfaceFileService {
	return c.Container.GetService("file").(services.InterfaceFileService)
}

// UploadFile stores an uploaded document
// @Summary      Upload a file
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Document to upload"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /files [post]
// @Security     BearerAuth
func (c *FileController) UploadFile() {
	header, err := c.Context.FormFile("file")
	if err != nil {
		response.BadRequest(c.Context, "file form field is required")
		return
	}
	file, err := c.files().Upload(header, middleware.CurrentUserID(c.Context))
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Created(c.Context, file)
}

// GetFiles lists uploaded file metadata
// @Summary      List files
// @Tags         Files
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        search query string false "Original name or mime type fragment"
// @Success      200 {object} response.Response
// @Router       /files [get]
// @Security     BearerAuth
func (c *FileController) GetFiles() {
	var p models.PaginationQuery
	if err := c.Context.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c.Context, "invalid pagination parameters")
		return
	}
	p.Normalize()
	files, total, err := c.files().List(c.Context.Query("search"), p)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, response.NewPaginated(files, p.Page, p.Limit, total))
}

// DownloadFile streams the stored bytes
// @Summary      Download a file
// @Tags         Files
// @Produce      octet-stream
// @Param        id path int true "File ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.Response
// @Router       /files/{id}/download [get]
// @Security     BearerAuth
func (c *FileController) DownloadFile() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	file, err := c.files().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	c.Context.FileAttachment(file.Path, file.OriginalName)
}

// GetFile returns file metadata
// @Summary      Get file metadata
// @Tags         Files
// @Produce      json
// @Param        id path int true "File ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /files/{id} [get]
// @Security     BearerAuth
func (c *FileController) GetFile() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	file, err := c.files().GetByID(id)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, file)
}

// DeleteFile removes an uploaded file
// @Summary      Delete file
// @Tags         Files
// @Produce      json
// @Param        id path int true "File ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /files/{id} [delete]
// @Security     BearerAuth
func (c *FileController) DeleteFile() {
	id, err := parseIDParam(c.Context)
	if err != nil {
		response.Fail(c.Context, err)
		return
	}
	if err := c.files().Delete(id); err != nil {
		response.Fail(c.Context, err)
		return
	}
	response.Success(c.Context, nil)
}

// HandleFileFunc dispatches file requests
func HandleFileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)
	return func(ctx *gin.Context) {
		controller := factory.NewFileController(ctx)
		switch method {
		case "uploadFile":
			controller.UploadFile()
		case "getFiles":
			controller.GetFiles()
		case "getFile":
			controller.GetFile()
		case "downloadFile":
			controller.DownloadFile()
		case "deleteFile":
			controller.DeleteFile()
		default:
			ctx.JSON(http.StatusBadRequest, response.Response{
				Code:    http.StatusBadRequest,
				Message: "unknown method",
			})
		}
	}
}
