package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/crazythursday/copywriting/internal/database/audit"
	"github.com/crazythursday/copywriting/internal/entities"
)

const entityCopywriting = "copywriting"

// Service provides high-level audit logging functionality.
type Service struct {
	repo  *audit.Repository
	async bool
}

// Option configures a Service.
type Option func(*Service)

// WithSynchronousWrites makes every Log* call block until the event is stored.
// Short-lived commands use it so events are not lost on exit.
func WithSynchronousWrites() Option {
	return func(s *Service) {
		s.async = false
	}
}

// NewService creates a new audit service. Events are written in the background
// unless WithSynchronousWrites is given.
func NewService(repo *audit.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, async: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

func (s *Service) record(event *entities.AuditEvent) {
	if s.async {
		s.LogAsync(event)
		return
	}
	if err := s.Log(event); err != nil {
		log.Printf("Failed to log audit event: %v", err)
	}
}

// LogImport records the outcome of an import run.
func (s *Service) LogImport(run *entities.ImportRun) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      run.Source + "_import",
		Description: fmt.Sprintf("Imported %d of %d records", run.Succeeded, run.Total),
		EntityType:  "import_run",
		EntityID:    run.ID,
		Status:      entities.AuditStatusSuccess,
	}
	if run.Origin != "" {
		event.Description += " from " + run.Origin
	}

	metadata := map[string]any{
		"total":     run.Total,
		"succeeded": run.Succeeded,
		"failed":    run.Failed,
		"batches":   run.Batches,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	switch {
	case run.Status == entities.ImportRunFailed:
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(run.Error, 500)
	case run.Failed > 0:
		event.Status = entities.AuditStatusPartial
		event.ErrorMsg = fmt.Sprintf("%d records failed", run.Failed)
	}

	s.record(event)
}

// LogSubmission records a public submission.
func (s *Service) LogSubmission(id uint, ipAddr string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSubmission,
		Action:      "copywriting_submit",
		Description: "New submission awaiting review",
		EntityType:  entityCopywriting,
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
	if id > 0 {
		event.EntityID = strconv.FormatUint(uint64(id), 10)
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogModeration records a status change made by a moderator.
func (s *Service) LogModeration(id uint, status entities.CopywritingStatus, ipAddr string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventModeration,
		Action:      "copywriting_" + moderationVerb(status),
		Description: fmt.Sprintf("Set copywriting %d to %s", id, status),
		EntityType:  entityCopywriting,
		EntityID:    strconv.FormatUint(uint64(id), 10),
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(id uint, ipAddr string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      "copywriting_delete",
		Description: fmt.Sprintf("Deleted copywriting %d", id),
		EntityType:  entityCopywriting,
		EntityID:    strconv.FormatUint(uint64(id), 10),
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogPolicyCheck records a run of the row-level-security inspector.
func (s *Service) LogPolicyCheck(table string, policies int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventPolicyCheck,
		Action:      "check_policies",
		Description: fmt.Sprintf("Found %d policies on %s", policies, table),
		EntityType:  "table",
		EntityID:    table,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// LogCleanup records a retention sweep.
func (s *Service) LogCleanup(target string, deleted int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCleanup,
		Action:      "cleanup_" + target,
		Description: fmt.Sprintf("Removed %d expired %s", deleted, target),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// GetHistory returns every event recorded for one copywriting row.
func (s *Service) GetHistory(id uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityCopywriting, strconv.FormatUint(uint64(id), 10))
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func moderationVerb(status entities.CopywritingStatus) string {
	switch status {
	case entities.StatusApproved:
		return "approve"
	case entities.StatusRejected:
		return "reject"
	}
	return "reset"
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
