package repository

import (
	"errors"
	"time"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// jobRepository implements the JobRepository interface on top of the jobs
// table. Claiming uses a row lock with SKIP LOCKED so concurrent workers
// never receive the same job.
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Enqueue inserts the job inside the caller's transaction. The row becomes
// visible to workers only when that transaction commits, which couples the
// job's existence to the state change that requested it.
func (r *jobRepository) Enqueue(tx *gorm.DB, job *models.Job) error {
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = models.DefaultJobMaxAttempts
	}
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}
	if job.RunAt.IsZero() {
		job.RunAt = time.Now()
	}
	return tx.Create(job).Error
}

// ClaimNext hands out the oldest due pending job of the given type to exactly
// one caller, marking it processing. Returns nil when no job is due.
func (r *jobRepository) ClaimNext(jobType string, now time.Time) (*models.Job, error) {
	var claimed *models.Job
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("type = ? AND status = ? AND run_at <= ?", jobType, models.JobStatusPending, now).
			Order("id").
			First(&job).Error
		if err != nil {
			return err
		}

		job.MarkAsProcessing(now)
		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]any{
			"status":    job.Status,
			"locked_at": job.LockedAt,
			"attempts":  job.Attempts,
		}).Error; err != nil {
			return err
		}
		claimed = &job
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return claimed, nil
}

// Update persists the job's retry/failure bookkeeping
func (r *jobRepository) Update(job *models.Job) error {
	return r.db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]any{
		"status":     job.Status,
		"attempts":   job.Attempts,
		"run_at":     job.RunAt,
		"locked_at":  job.LockedAt,
		"last_error": job.LastError,
	}).Error
}

// Delete removes a completed job
func (r *jobRepository) Delete(id uint) error {
	return r.db.Delete(&models.Job{}, id).Error
}

// RequeueStuck returns jobs stuck in processing (e.g. after a worker crash)
// to the pending state so delivery stays at-least-once.
func (r *jobRepository) RequeueStuck(olderThan time.Duration, now time.Time) (int64, error) {
	res := r.db.Model(&models.Job{}).
		Where("status = ? AND locked_at IS NOT NULL AND locked_at < ?", models.JobStatusProcessing, now.Add(-olderThan)).
		Updates(map[string]any{
			"status":     models.JobStatusPending,
			"locked_at":  nil,
			"run_at":     now,
			"last_error": "recovered by sweeper",
		})
	return res.RowsAffected, res.Error
}

// CountByStatus returns the number of jobs in the given state
func (r *jobRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
