// Package response provides the uniform JSON envelope used by every
// controller.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/code"
)

// Response is the envelope for every API reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Paginated wraps a list payload with its pagination block
type Paginated struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"total_pages"`
}

// NewPaginated builds a Paginated payload
func NewPaginated(items interface{}, page, limit int, total int64) Paginated {
	pages := (total + int64(limit) - 1) / int64(limit)
	return Paginated{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	}
}

// Success writes a 200 reply
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 reply
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Fail maps a domain error to its fixed HTTP status and writes the
// envelope. The kind to status mapping lives in the code package.
func Fail(c *gin.Context, err error) {
	status := code.HTTPStatus(code.KindOf(err))
	c.JSON(status, Response{
		Code:    status,
		Message: code.Message(err),
	})
}

// BadRequest writes a 400 reply for request binding problems.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
