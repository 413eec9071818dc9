package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/crazythursday/copywriting/internal/entities"
)

var (
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrInvalidStatus = errors.New("invalid status")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ModerationService backs the public submission surface and the admin review
// queue.
type ModerationService struct {
	store      ContentStore
	auditor    ModerationAuditor
	observer   ModerationObserver
	collection string
	intn       func(n int) int
}

// ModerationOption configures a ModerationService.
type ModerationOption func(*ModerationService)

func WithModerationAuditor(auditor ModerationAuditor) ModerationOption {
	return func(s *ModerationService) { s.auditor = auditor }
}

func WithModerationObserver(observer ModerationObserver) ModerationOption {
	return func(s *ModerationService) { s.observer = observer }
}

func WithModerationCollection(collection string) ModerationOption {
	return func(s *ModerationService) { s.collection = collection }
}

// NewModerationService creates a new ModerationService.
func NewModerationService(store ContentStore, opts ...ModerationOption) *ModerationService {
	s := &ModerationService{
		store:      store,
		collection: entities.CopywritingTable,
		intn:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores a public submission as pending.
func (s *ModerationService) Submit(ctx context.Context, content, ipAddr string) (*entities.Copywriting, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	rows, err := s.store.Insert(ctx, s.collection, []entities.CopywritingInput{
		{Content: content, Status: entities.StatusPending},
	})
	if err == nil && len(rows) == 0 {
		err = errors.New("store returned no row")
	}
	if err != nil {
		if s.auditor != nil {
			s.auditor.LogSubmission(0, ipAddr, err)
		}
		return nil, fmt.Errorf("failed to submit: %w", err)
	}

	if s.auditor != nil {
		s.auditor.LogSubmission(rows[0].ID, ipAddr, nil)
	}
	return &rows[0], nil
}

// ListApproved returns one page of approved records, newest first.
func (s *ModerationService) ListApproved(ctx context.Context, limit, offset int) ([]entities.Copywriting, error) {
	return s.List(ctx, entities.StatusApproved, limit, offset)
}

// List returns one page of records in status (all when empty).
func (s *ModerationService) List(ctx context.Context, status entities.CopywritingStatus, limit, offset int) ([]entities.Copywriting, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.List(ctx, s.collection, entities.ListFilter{
		Status: status,
		Limit:  clampLimit(limit),
		Offset: max(offset, 0),
	})
}

// Random picks one approved record uniformly.
func (s *ModerationService) Random(ctx context.Context) (*entities.Copywriting, error) {
	total, err := s.store.Count(ctx, s.collection, entities.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved records: %w", err)
	}
	if total == 0 {
		return nil, entities.ErrNotFound
	}

	rows, err := s.store.List(ctx, s.collection, entities.ListFilter{
		Status: entities.StatusApproved,
		Limit:  1,
		Offset: s.intn(int(total)),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// Rows were removed between Count and List.
		return nil, entities.ErrNotFound
	}
	return &rows[0], nil
}

// Review moves a record to a new moderation state.
func (s *ModerationService) Review(ctx context.Context, id uint, status entities.CopywritingStatus, ipAddr string) (*entities.Copywriting, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	row, err := s.store.UpdateStatus(ctx, s.collection, id, status)
	if s.auditor != nil {
		s.auditor.LogModeration(id, status, ipAddr, err)
	}
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		s.observer.ObserveModeration(status)
	}
	return row, nil
}

// Delete removes a record.
func (s *ModerationService) Delete(ctx context.Context, id uint, ipAddr string) error {
	err := s.store.Delete(ctx, s.collection, id)
	if s.auditor != nil {
		s.auditor.LogDelete(id, ipAddr, err)
	}
	return err
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return min(limit, MaxPageSize)
}
