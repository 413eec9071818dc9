package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/crazythursday/copywriting/internal/entities"
)

type mockAuditReader struct {
	eventType entities.AuditEventType
	limit     int
	offset    int
	historyID uint
	err       error
}

func (m *mockAuditReader) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	m.eventType, m.limit, m.offset = eventType, limit, offset
	if m.err != nil {
		return nil, 0, m.err
	}
	return []entities.AuditEvent{{ID: 1, EventType: entities.AuditEventImport}}, 51, nil
}

func (m *mockAuditReader) GetHistory(id uint) ([]entities.AuditEvent, error) {
	m.historyID = id
	return []entities.AuditEvent{{ID: 2, EventType: entities.AuditEventModeration, EntityID: "9"}}, m.err
}

func newAuditRouter(reader AuditReader) *gin.Engine {
	controller := NewAuditController(reader)
	router := gin.New()
	router.GET("/api/admin/audit", controller.GetAuditEvents)
	router.GET("/api/admin/copywriting/:id/history", controller.GetHistory)
	return router
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	reader := &mockAuditReader{}
	w := doRequest(newAuditRouter(reader), "GET", "/api/admin/audit?type=import&page=3&limit=25", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.AuditEventImport, reader.eventType)
	assert.Equal(t, 25, reader.limit)
	assert.Equal(t, 50, reader.offset)
	assert.Contains(t, w.Body.String(), `"total_pages":3`)
	assert.Contains(t, w.Body.String(), `"total_events":51`)
}

func TestAuditController_ClampsLimit(t *testing.T) {
	reader := &mockAuditReader{}
	doRequest(newAuditRouter(reader), "GET", "/api/admin/audit?limit=1000&page=0", "")

	assert.Equal(t, 25, reader.limit)
	assert.Equal(t, 0, reader.offset)
	assert.Empty(t, reader.eventType)
}

func TestAuditController_Error(t *testing.T) {
	w := doRequest(newAuditRouter(&mockAuditReader{err: errors.New("locked")}), "GET", "/api/admin/audit", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuditController_GetHistory(t *testing.T) {
	reader := &mockAuditReader{}
	w := doRequest(newAuditRouter(reader), "GET", "/api/admin/copywriting/9/history", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), reader.historyID)
	assert.Contains(t, w.Body.String(), `"entity_id":"9"`)
}
