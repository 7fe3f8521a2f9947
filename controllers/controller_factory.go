// Package controllers translates HTTP requests into service calls and
// service results into the uniform response envelope.
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/services/container"
)

// BaseControllerImpl carries the container and request context shared
// by every controller
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// ControllerFactory builds per-request controllers
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory creates a new controller factory
func NewControllerFactory(c *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{Container: c}
}

// parseIDParam reads the :id route parameter
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, code.Validation("invalid id parameter")
	}
	return uint(id), nil
}

// parseUintQuery reads an optional numeric query parameter, returning
// zero when absent
func parseUintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
