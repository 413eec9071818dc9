package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazythursday/copywriting/internal/tasks"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (q *recordingQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-id", nil
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},    // Daily at 03:00
		{"*/15 * * * *", true}, // Every 15 minutes
		{"0 0 * * 0", true},    // Weekly on Sunday
		{"invalid", false},
		{"* * * *", false},    // Missing field
		{"60 * * * *", false}, // Invalid minute
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", GetCronDescription("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestCleanupScheduler_RunNow(t *testing.T) {
	queue := &recordingQueue{}
	s := NewCleanupScheduler(queue, CleanupConfig{
		Schedule:           "0 3 * * *",
		AuditRetentionDays: 30,
		RunRetentionDays:   90,
	})

	s.RunNow()

	require.Len(t, queue.tasks, 2)
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 30}, queue.tasks[0])
	assert.Equal(t, tasks.CleanupImportRunsTask{RetentionDays: 90}, queue.tasks[1])
}

func TestCleanupScheduler_RunNowEnqueueFailure(t *testing.T) {
	queue := &recordingQueue{err: errors.New("database is locked")}
	s := NewCleanupScheduler(queue, CleanupConfig{Schedule: "0 3 * * *"})

	assert.NotPanics(t, s.RunNow)
	assert.Empty(t, queue.tasks)
}

func TestCleanupScheduler_StartStop(t *testing.T) {
	s := NewCleanupScheduler(&recordingQueue{}, CleanupConfig{Schedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 3, next.Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, s.GetNextRunTime())
}

func TestCleanupScheduler_StartErrors(t *testing.T) {
	s := NewCleanupScheduler(&recordingQueue{}, CleanupConfig{Schedule: "every day"})
	assert.ErrorContains(t, s.Start(context.Background()), "invalid cron schedule")

	s = NewCleanupScheduler(nil, CleanupConfig{Schedule: "0 3 * * *"})
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}
