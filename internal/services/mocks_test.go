package services

import (
	"context"
	"errors"
	"sync"

	"github.com/crazythursday/copywriting/internal/entities"
)

// memStore is an in-memory ContentStore. Insert calls listed in failOnCall
// (1-based) return an error without storing anything.
type memStore struct {
	mu          sync.Mutex
	rows        []entities.Copywriting
	nextID      uint
	insertCalls int
	failOnCall  map[int]error
	err         error
}

func newMemStore() *memStore {
	return &memStore{failOnCall: map[int]error{}}
}

func (m *memStore) Insert(_ context.Context, _ string, records []entities.CopywritingInput) ([]entities.Copywriting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if err, ok := m.failOnCall[m.insertCalls]; ok {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entities.Copywriting, 0, len(records))
	for _, r := range records {
		m.nextID++
		row := entities.Copywriting{ID: m.nextID, Content: r.Content, Status: r.Status}
		m.rows = append(m.rows, row)
		out = append(out, row)
	}
	return out, nil
}

func (m *memStore) filtered(status entities.CopywritingStatus) []entities.Copywriting {
	var out []entities.Copywriting
	for _, r := range m.rows {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) List(_ context.Context, _ string, f entities.ListFilter) ([]entities.Copywriting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	rows := m.filtered(f.Status)
	if f.Offset >= len(rows) {
		return nil, nil
	}
	rows = rows[f.Offset:]
	if f.Limit > 0 && f.Limit < len(rows) {
		rows = rows[:f.Limit]
	}
	return rows, nil
}

func (m *memStore) Count(_ context.Context, _ string, status entities.CopywritingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.filtered(status))), nil
}

func (m *memStore) UpdateStatus(_ context.Context, _ string, id uint, status entities.CopywritingStatus) (*entities.Copywriting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, entities.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, _ string, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return entities.ErrNotFound
}

type memRuns struct {
	started  []*entities.ImportRun
	finished []entities.ImportRun
	startErr error
}

func (r *memRuns) Start(run *entities.ImportRun) error {
	r.started = append(r.started, run)
	return r.startErr
}

func (r *memRuns) Finish(run *entities.ImportRun) error {
	r.finished = append(r.finished, *run)
	return nil
}

type recordingAuditor struct {
	imports     []entities.ImportRun
	submissions []uint
	moderations []entities.CopywritingStatus
	deletes     []uint
	errs        []error
}

func (a *recordingAuditor) LogImport(run *entities.ImportRun) {
	a.imports = append(a.imports, *run)
}

func (a *recordingAuditor) LogSubmission(id uint, _ string, err error) {
	a.submissions = append(a.submissions, id)
	a.errs = append(a.errs, err)
}

func (a *recordingAuditor) LogModeration(_ uint, status entities.CopywritingStatus, _ string, err error) {
	a.moderations = append(a.moderations, status)
	a.errs = append(a.errs, err)
}

func (a *recordingAuditor) LogDelete(id uint, _ string, err error) {
	a.deletes = append(a.deletes, id)
	a.errs = append(a.errs, err)
}

type countingObserver map[entities.CopywritingStatus]int

func (o countingObserver) ObserveModeration(status entities.CopywritingStatus) {
	o[status]++
}

var errStore = errors.New("permission denied for table copywriting")
