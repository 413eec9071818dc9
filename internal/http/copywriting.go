package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/supabase"
)

// CopywritingService is the moderation surface used by CopywritingController.
// services.ModerationService implements it.
type CopywritingService interface {
	Submit(ctx context.Context, content, ipAddr string) (*entities.Copywriting, error)
	ListApproved(ctx context.Context, limit, offset int) ([]entities.Copywriting, error)
	List(ctx context.Context, status entities.CopywritingStatus, limit, offset int) ([]entities.Copywriting, error)
	Random(ctx context.Context) (*entities.Copywriting, error)
	Review(ctx context.Context, id uint, status entities.CopywritingStatus, ipAddr string) (*entities.Copywriting, error)
	Delete(ctx context.Context, id uint, ipAddr string) error
}

type CopywritingController struct {
	service CopywritingService
}

func NewCopywritingController(service CopywritingService) *CopywritingController {
	return &CopywritingController{service: service}
}

type SubmitRequest struct {
	Content string `json:"content"`
}

type ReviewRequest struct {
	Status entities.CopywritingStatus `json:"status"`
}

// ListApproved handles GET /api/copywriting
func (cc *CopywritingController) ListApproved(c *gin.Context) {
	limit, offset := parsePagination(c)
	rows, err := cc.service.ListApproved(c.Request.Context(), limit, offset)
	if err != nil {
		cc.respondServiceError(c, err, "list approved")
		return
	}
	c.JSON(http.StatusOK, paginated(rows, len(rows), effectiveLimit(limit), offset, 0))
}

// Random handles GET /api/copywriting/random
func (cc *CopywritingController) Random(c *gin.Context) {
	row, err := cc.service.Random(c.Request.Context())
	if err != nil {
		cc.respondServiceError(c, err, "random")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Submit handles POST /api/copywriting
func (cc *CopywritingController) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	row, err := cc.service.Submit(c.Request.Context(), req.Content, c.ClientIP())
	if err != nil {
		cc.respondServiceError(c, err, "submit")
		return
	}
	respondCreated(c, row)
}

// List handles GET /api/admin/copywriting?status=
func (cc *CopywritingController) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	status := entities.CopywritingStatus(c.Query("status"))

	rows, err := cc.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		cc.respondServiceError(c, err, "list")
		return
	}
	c.JSON(http.StatusOK, paginated(rows, len(rows), effectiveLimit(limit), offset, 0))
}

// Review handles PATCH /api/admin/copywriting/:id
func (cc *CopywritingController) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	row, err := cc.service.Review(c.Request.Context(), id, req.Status, c.ClientIP())
	if err != nil {
		cc.respondServiceError(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete handles DELETE /api/admin/copywriting/:id
func (cc *CopywritingController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.service.Delete(c.Request.Context(), id, c.ClientIP()); err != nil {
		cc.respondServiceError(c, err, "delete")
		return
	}
	respondSuccess(c, "copywriting deleted")
}

func (cc *CopywritingController) respondServiceError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrInvalidStatus):
		respondBadRequest(c, err.Error())
	case errors.Is(err, entities.ErrNotFound):
		respondNotFound(c, "copywriting")
	case errors.Is(err, supabase.ErrUnauthorized):
		respondError(c, http.StatusBadGateway, "content store rejected the request")
	default:
		respondInternalError(c, err, op)
	}
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return services.DefaultPageSize
	}
	return min(limit, services.MaxPageSize)
}
