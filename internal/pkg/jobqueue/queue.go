package jobqueue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

const (
	// Redis keys (signaling and live stats only; job rows live in the DB)
	WakeKeyPrefix = "jobs:wake:"
	JobStatsKey   = "jobs:stats"

	StatCompleted = "completed"
	StatFailed    = "failed"
	StatDead      = "dead"

	idlePollInterval = time.Second
)

// Handler processes one claimed job. Returning an error reschedules the job
// per its retry policy; returning nil removes it.
type Handler func(ctx context.Context, job *models.Job) error

type subscription struct {
	jobType     string
	concurrency int
	handler     Handler
}

// Queue delivers durable DB-backed jobs to registered handlers. Each job type
// runs with its own bounded concurrency; workers poll the jobs table and use
// a Redis wake-up list to cut latency between enqueue and pickup.
type Queue struct {
	repo    repository.JobRepository
	redis   *redis.Client
	subs    []subscription
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewQueue creates a job queue on top of the given job repository.
// redisClient may be nil; the queue then falls back to plain polling.
func NewQueue(repo repository.JobRepository, redisClient *redis.Client) *Queue {
	return &Queue{
		repo:   repo,
		redis:  redisClient,
		stopCh: make(chan struct{}),
	}
}

// Subscribe registers a handler for a job type. Concurrency bounds how many
// jobs of this type run at once; values below 1 serialize to a single worker,
// which is the default for payment processing to rule out issuance races.
func (q *Queue) Subscribe(jobType string, concurrency int, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		log.Errorf("[JobQueue] Subscribe(%s) after Start ignored", jobType)
		return
	}
	if concurrency < 1 {
		concurrency = 1
	}
	q.subs = append(q.subs, subscription{jobType: jobType, concurrency: concurrency, handler: handler})
}

// Start launches the workers for every subscription.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}

	q.stopCh = make(chan struct{})
	q.running = true

	for _, sub := range q.subs {
		log.Infof("[JobQueue] Starting %d worker(s) for type %s", sub.concurrency, sub.jobType)
		for i := 0; i < sub.concurrency; i++ {
			q.wg.Add(1)
			go q.worker(sub, i)
		}
	}
}

// Stop stops all workers and waits for in-flight jobs to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return
	}

	log.Info("[JobQueue] Stopping workers...")
	close(q.stopCh)
	q.running = false
	q.wg.Wait()
	log.Info("[JobQueue] All workers stopped")
}

// Notify wakes workers for a job type after the enqueuing transaction has
// committed. Best-effort: workers poll anyway.
func (q *Queue) Notify(jobType string) {
	if q.redis == nil {
		return
	}
	if err := q.redis.LPush(context.Background(), WakeKeyPrefix+jobType, "1").Err(); err != nil {
		log.Errorf("[JobQueue] Wake notify failed for %s: %v", jobType, err)
	}
}

// worker claims and processes jobs of one type until the queue stops.
func (q *Queue) worker(sub subscription, id int) {
	defer q.wg.Done()
	log.Infof("[JobQueue] Worker %s/%d started", sub.jobType, id)

	ctx := context.Background()

	for {
		select {
		case <-q.stopCh:
			log.Infof("[JobQueue] Worker %s/%d stopping", sub.jobType, id)
			return
		default:
			job, err := q.repo.ClaimNext(sub.jobType, time.Now())
			if err != nil {
				log.Errorf("[JobQueue] Worker %s/%d: claim error: %v", sub.jobType, id, err)
				q.sleep(idlePollInterval)
				continue
			}
			if job == nil {
				q.waitForWake(ctx, sub.jobType)
				continue
			}

			log.Infof("[JobQueue] Worker %s/%d processing job %d (attempt %d/%d)", sub.jobType, id, job.ID, job.Attempts, job.MaxAttempts)
			q.processJob(ctx, sub, job)
		}
	}
}

// processJob runs the handler and applies the retry policy on failure.
func (q *Queue) processJob(ctx context.Context, sub subscription, job *models.Job) {
	err := sub.handler(ctx, job)
	now := time.Now()

	if err != nil {
		log.Errorf("[JobQueue] Job %d (%s) failed: %v", job.ID, job.Type, err)
		job.MarkAsFailed(now, err.Error())
		if uerr := q.repo.Update(job); uerr != nil {
			log.Errorf("[JobQueue] Failed to persist retry state for job %d: %v", job.ID, uerr)
		}
		if job.Status == models.JobStatusDead {
			log.Errorf("[JobQueue] Job %d permanently failed after %d attempts", job.ID, job.Attempts)
			q.bumpStat(StatDead)
		} else {
			log.Infof("[JobQueue] Job %d rescheduled for %s", job.ID, job.RunAt.Format(time.RFC3339))
			q.bumpStat(StatFailed)
		}
		return
	}

	// Success: the job is removed entirely, which is what makes redelivery
	// after a full success impossible under normal operation.
	if derr := q.repo.Delete(job.ID); derr != nil {
		log.Errorf("[JobQueue] Failed to remove completed job %d: %v", job.ID, derr)
	}
	q.bumpStat(StatCompleted)
	log.Infof("[JobQueue] Job %d completed", job.ID)
}

// waitForWake blocks briefly on the wake list, falling back to a plain sleep
// when Redis is unavailable.
func (q *Queue) waitForWake(ctx context.Context, jobType string) {
	if q.redis == nil {
		q.sleep(idlePollInterval)
		return
	}
	_, err := q.redis.BRPop(ctx, idlePollInterval, WakeKeyPrefix+jobType).Result()
	if err != nil && err != redis.Nil {
		log.Errorf("[JobQueue] Wake wait error for %s: %v", jobType, err)
		q.sleep(idlePollInterval)
	}
}

func (q *Queue) sleep(d time.Duration) {
	select {
	case <-q.stopCh:
	case <-time.After(d):
	}
}

func (q *Queue) bumpStat(field string) {
	if q.redis == nil {
		return
	}
	if err := q.redis.HIncrBy(context.Background(), JobStatsKey, field, 1).Err(); err != nil {
		log.Errorf("[JobQueue] Failed to update job stats: %v", err)
	}
}

// GetJobStats returns the live processing counters.
func (q *Queue) GetJobStats(ctx context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	if q.redis == nil {
		return result, nil
	}
	stats, err := q.redis.HGetAll(ctx, JobStatsKey).Result()
	if err != nil {
		return nil, err
	}
	for field, count := range stats {
		if n, err := strconv.ParseInt(count, 10, 64); err == nil {
			result[field] = n
		}
	}
	return result, nil
}
