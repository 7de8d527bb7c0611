// internal/api/handlers/classification_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/gestio-app/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type ClassificationHandler struct {
	service *service.ClassificationService
}

func NewClassificationHandler(service *service.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{service: service}
}

// GetQuadrants classifies the tenant's catalog over the selected period.
// from/to are inclusive calendar dates; the default period is the last 30
// days.
func (h *ClassificationHandler) GetQuadrants(c *gin.Context) {
	tenantID, ok := parseTenantID(c)
	if !ok {
		return
	}

	now := time.Now()
	filter := domain.PeriodFilter{
		TenantID: tenantID,
		From:     now.AddDate(0, 0, -30),
		To:       now.AddDate(0, 0, 1),
	}

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		filter.From = from
	}

	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		// inclusive end date, exclusive bound in the query
		filter.To = to.AddDate(0, 0, 1)
	}

	items, err := h.service.Quadrants(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to classify items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}
