package models

import (
	"time"
)

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDead       = "dead"
)

const DefaultJobMaxAttempts = 3

// Job is a durable unit of background work. Rows are inserted transactionally
// with the state that caused them (e.g. the webhook idempotency marker), so a
// job exists if and only if its trigger was committed. Completed jobs are
// deleted; exhausted ones are kept with status dead for inspection.
type Job struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(50);not null;index:idx_jobs_type_status_run,priority:1" json:"type"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_jobs_type_status_run,priority:2" json:"status"`
	PayloadJSON string     `gorm:"type:longtext;not null" json:"payload_json"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	MaxAttempts int        `gorm:"not null;default:3" json:"max_attempts"`
	RunAt       time.Time  `gorm:"not null;index:idx_jobs_type_status_run,priority:3" json:"run_at"`
	LockedAt    *time.Time `gorm:"type:timestamp;default:null" json:"locked_at,omitempty"`
	LastError   string     `gorm:"type:text" json:"last_error"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsRetryable checks if the job has attempts left after a failure.
func (j *Job) IsRetryable() bool {
	return j.Attempts < j.MaxAttempts
}

// MarkAsProcessing flags the job as claimed by a worker.
func (j *Job) MarkAsProcessing(now time.Time) {
	j.Status = JobStatusProcessing
	j.LockedAt = &now
	j.Attempts++
	j.UpdatedAt = now
}

// MarkAsFailed records the handler error and either schedules the retry or
// parks the job as dead when attempts are exhausted.
func (j *Job) MarkAsFailed(now time.Time, errMsg string) {
	j.LastError = errMsg
	j.LockedAt = nil
	j.UpdatedAt = now
	if j.IsRetryable() {
		j.Status = JobStatusPending
		j.RunAt = now.Add(RetryBackoff(j.Attempts))
		return
	}
	j.Status = JobStatusDead
}

// RetryBackoff returns the delay before the given attempt number is retried.
// Linear per-attempt backoff: one minute per attempt already spent.
func RetryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts) * time.Minute
}
