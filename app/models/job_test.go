package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryBackoff(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		expected time.Duration
	}{
		{"First attempt", 1, time.Minute},
		{"Second attempt", 2, 2 * time.Minute},
		{"Third attempt", 3, 3 * time.Minute},
		{"Zero clamps to one", 0, time.Minute},
		{"Negative clamps to one", -5, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RetryBackoff(tt.attempts))
		})
	}
}

func TestJobMarkAsProcessing(t *testing.T) {
	now := time.Now()
	job := &Job{Status: JobStatusPending, Attempts: 1, MaxAttempts: 3}

	job.MarkAsProcessing(now)

	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.Equal(t, 2, job.Attempts)
	assert.NotNil(t, job.LockedAt)
	assert.Equal(t, now, *job.LockedAt)
}

func TestJobMarkAsFailed(t *testing.T) {
	now := time.Now()

	t.Run("Retryable job goes back to pending with backoff", func(t *testing.T) {
		job := &Job{Status: JobStatusProcessing, Attempts: 1, MaxAttempts: 3}

		job.MarkAsFailed(now, "smtp timeout")

		assert.Equal(t, JobStatusPending, job.Status)
		assert.Equal(t, "smtp timeout", job.LastError)
		assert.Nil(t, job.LockedAt)
		assert.Equal(t, now.Add(time.Minute), job.RunAt)
	})

	t.Run("Exhausted job becomes dead", func(t *testing.T) {
		job := &Job{Status: JobStatusProcessing, Attempts: 3, MaxAttempts: 3}

		job.MarkAsFailed(now, "gateway unreachable")

		assert.Equal(t, JobStatusDead, job.Status)
		assert.Equal(t, "gateway unreachable", job.LastError)
		assert.Nil(t, job.LockedAt)
	})
}

func TestJobIsRetryable(t *testing.T) {
	assert.True(t, (&Job{Attempts: 2, MaxAttempts: 3}).IsRetryable())
	assert.False(t, (&Job{Attempts: 3, MaxAttempts: 3}).IsRetryable())
}
