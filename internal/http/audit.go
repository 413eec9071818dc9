package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/entities"
)

// AuditReader reads the audit log. audit.Service implements it.
type AuditReader interface {
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetHistory(id uint) ([]entities.AuditEvent, error)
}

type AuditController struct {
	auditService AuditReader
}

func NewAuditController(auditService AuditReader) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/admin/audit?type=&page=&limit=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	eventType := entities.AuditEventType(c.Query("type"))
	offset := (page - 1) * limit

	events, total, err := ac.auditService.GetEvents(eventType, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}

// GetHistory returns the audit trail of one record
// GET /api/admin/copywriting/:id/history
func (ac *AuditController) GetHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := ac.auditService.GetHistory(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load audit events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
