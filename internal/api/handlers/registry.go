package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestionale/gestionale/internal/core/registry"
)

// RegistryHandler exposes the record-type registry read-only: the type set
// is fixed at startup.
type RegistryHandler struct {
	registry *registry.Registry
}

func NewRegistryHandler(reg *registry.Registry) *RegistryHandler {
	return &RegistryHandler{registry: reg}
}

func (h *RegistryHandler) List(c *gin.Context) {
	types := h.registry.All()
	c.JSON(http.StatusOK, gin.H{"types": types, "total": len(types)})
}

func (h *RegistryHandler) Get(c *gin.Context) {
	rt, err := h.registry.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, registry.ErrUnknownType) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rt)
}
