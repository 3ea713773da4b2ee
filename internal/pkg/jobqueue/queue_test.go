package jobqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
)

// fakeJobRepo records what the queue does with a job.
type fakeJobRepo struct {
	updated *models.Job
	deleted []uint
}

func (f *fakeJobRepo) Enqueue(tx *gorm.DB, job *models.Job) error { return nil }
func (f *fakeJobRepo) ClaimNext(jobType string, now time.Time) (*models.Job, error) {
	return nil, nil
}
func (f *fakeJobRepo) Update(job *models.Job) error {
	f.updated = job
	return nil
}
func (f *fakeJobRepo) Delete(id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeJobRepo) RequeueStuck(olderThan time.Duration, now time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeJobRepo) CountByStatus(status string) (int64, error) { return 0, nil }

func TestProcessJobSuccessDeletesJob(t *testing.T) {
	repo := &fakeJobRepo{}
	q := NewQueue(repo, nil)

	job := &models.Job{ID: 42, Type: JobTypeLicenseNotify, Attempts: 1, MaxAttempts: 3}
	sub := subscription{jobType: job.Type, handler: func(ctx context.Context, j *models.Job) error {
		return nil
	}}

	q.processJob(context.Background(), sub, job)

	assert.Equal(t, []uint{42}, repo.deleted)
	assert.Nil(t, repo.updated)
}

func TestProcessJobFailureReschedules(t *testing.T) {
	repo := &fakeJobRepo{}
	q := NewQueue(repo, nil)

	job := &models.Job{ID: 7, Type: JobTypePaymentProcess, Attempts: 1, MaxAttempts: 3}
	sub := subscription{jobType: job.Type, handler: func(ctx context.Context, j *models.Job) error {
		return errors.New("db unavailable")
	}}

	q.processJob(context.Background(), sub, job)

	assert.Empty(t, repo.deleted)
	assert.NotNil(t, repo.updated)
	assert.Equal(t, models.JobStatusPending, repo.updated.Status)
	assert.Equal(t, "db unavailable", repo.updated.LastError)
	assert.True(t, repo.updated.RunAt.After(time.Now()), "retry must be scheduled in the future")
}

func TestProcessJobExhaustionGoesDead(t *testing.T) {
	repo := &fakeJobRepo{}
	q := NewQueue(repo, nil)

	job := &models.Job{ID: 9, Type: JobTypePaymentProcess, Attempts: 3, MaxAttempts: 3}
	sub := subscription{jobType: job.Type, handler: func(ctx context.Context, j *models.Job) error {
		return errors.New("still failing")
	}}

	q.processJob(context.Background(), sub, job)

	assert.Empty(t, repo.deleted, "dead jobs are kept for inspection")
	assert.Equal(t, models.JobStatusDead, repo.updated.Status)
}

func TestSubscribeClampsConcurrency(t *testing.T) {
	q := NewQueue(&fakeJobRepo{}, nil)

	q.Subscribe(JobTypePaymentProcess, 0, func(ctx context.Context, j *models.Job) error { return nil })
	q.Subscribe(JobTypeLicenseNotify, 2, func(ctx context.Context, j *models.Job) error { return nil })

	assert.Len(t, q.subs, 2)
	assert.Equal(t, 1, q.subs[0].concurrency)
	assert.Equal(t, 2, q.subs[1].concurrency)
}

func TestStartStopIdempotent(t *testing.T) {
	q := NewQueue(&fakeJobRepo{}, nil)
	q.Subscribe(JobTypeLicenseNotify, 1, func(ctx context.Context, j *models.Job) error { return nil })

	q.Start()
	q.Start()
	q.Stop()
	q.Stop()
}
