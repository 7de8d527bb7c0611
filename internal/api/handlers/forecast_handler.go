// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gestio-app/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func parseTenantID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Query("tenant_id"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id is required"})
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// Recompute runs the full forecasting pass for the tenant. Synchronous: the
// caller is expected to disable the trigger control until it returns, since
// concurrent runs for the same tenant are not coordinated here.
func (h *ForecastHandler) Recompute(c *gin.Context) {
	tenantID, ok := parseTenantID(c)
	if !ok {
		return
	}

	result, err := h.service.Recompute(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recompute forecasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ForecastHandler) GetForecasts(c *gin.Context) {
	tenantID, ok := parseTenantID(c)
	if !ok {
		return
	}

	records, err := h.service.Current(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch forecasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forecasts": records,
		"total":     len(records),
	})
}

func (h *ForecastHandler) GetItems(c *gin.Context) {
	tenantID, ok := parseTenantID(c)
	if !ok {
		return
	}

	items, err := h.service.Items(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *ForecastHandler) GetKitComponents(c *gin.Context) {
	kitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || kitID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kit id"})
		return
	}

	components, err := h.service.KitComponents(c.Request.Context(), kitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch kit components", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"components": components,
		"total":      len(components),
	})
}
