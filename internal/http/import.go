package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/database/runs"
	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/importers"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/tasks"
)

// MaxImportPayload bounds the body of POST /api/admin/import.
const MaxImportPayload = 32 << 20

// PayloadArchive keeps a copy of every uploaded import payload.
type PayloadArchive interface {
	Save(payload []byte) (string, error)
}

// RunLister reads import run history.
type RunLister interface {
	ListRuns(limit, offset int) ([]entities.ImportRun, int64, error)
	GetRun(id string) (*entities.ImportRun, error)
}

type ImportController struct {
	importer tasks.CopywritingImporter
	archive  PayloadArchive
	queue    tasks.Enqueuer
	runs     RunLister
}

// NewImportController creates an import controller. With a nil queue imports
// run inline and respond with the summary.
func NewImportController(importer tasks.CopywritingImporter, archive PayloadArchive, queue tasks.Enqueuer, runs RunLister) *ImportController {
	return &ImportController{
		importer: importer,
		archive:  archive,
		queue:    queue,
		runs:     runs,
	}
}

type ImportAcceptedResponse struct {
	TaskID string `json:"task_id"`
	Origin string `json:"origin,omitempty"`
}

// Import handles POST /api/admin/import
// The body is a JSON array of strings or {content, status} objects.
// ?strict=true rejects the upload when any element is malformed.
func (ic *ImportController) Import(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportPayload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "import payload too large")
			return
		}
		respondBadRequest(c, "failed to read request body")
		return
	}

	origin := ""
	if ic.archive != nil {
		if origin, err = ic.archive.Save(body); err != nil {
			respondInternalError(c, err, "archive import payload")
			return
		}
	}

	records, err := importers.DecodeRecords(body)
	if err != nil {
		ic.importer.RecordFailure(services.SourceAPI, origin, err)
		respondBadRequest(c, err.Error())
		return
	}

	strict, _ := strconv.ParseBool(c.Query("strict"))
	if idx := importers.FirstMalformed(records); strict && idx >= 0 {
		err := fmt.Errorf("%w: element %d: %v", importers.ErrInvalidInput, idx+1, records[idx].Err)
		ic.importer.RecordFailure(services.SourceAPI, origin, err)
		respondBadRequest(c, err.Error())
		return
	}

	if ic.queue != nil {
		taskID, err := ic.queue.Enqueue(tasks.ImportCopywritingTask{
			Source:  services.SourceAPI,
			Origin:  origin,
			Payload: body,
		})
		if err != nil {
			respondInternalError(c, err, "enqueue import")
			return
		}
		respondAccepted(c, "import enqueued", ImportAcceptedResponse{TaskID: taskID, Origin: origin})
		return
	}

	outcome, err := ic.importer.Import(c.Request.Context(), services.ImportRequest{
		Source:  services.SourceAPI,
		Origin:  origin,
		Records: records,
	})
	if err != nil {
		respondInternalError(c, err, "import")
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ListRuns handles GET /api/admin/import/runs
func (ic *ImportController) ListRuns(c *gin.Context) {
	limit, offset := parsePagination(c)
	if limit == 0 {
		limit = 20
	}

	items, total, err := ic.runs.ListRuns(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list import runs")
		return
	}

	resp := paginated(items, len(items), limit, offset, total)
	resp.HasMore = int64(offset+len(items)) < total
	c.JSON(http.StatusOK, resp)
}

// GetRun handles GET /api/admin/import/runs/:id
func (ic *ImportController) GetRun(c *gin.Context) {
	run, err := ic.runs.GetRun(c.Param("id"))
	if errors.Is(err, runs.ErrRunNotFound) {
		respondNotFound(c, "import run")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get import run")
		return
	}
	c.JSON(http.StatusOK, run)
}
