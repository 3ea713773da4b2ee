package jobqueue

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

const (
	// Jobs locked longer than this are assumed to belong to a crashed worker
	// and are handed back to the pending pool.
	StuckJobThreshold = 10 * time.Minute

	sweepInterval = time.Minute
)

// Manager runs the queue plus its maintenance loop. The sweeper requeues jobs
// that a crashed worker left in processing state, so a completed-but-unacked
// payment job is eventually redelivered instead of lost.
type Manager struct {
	queue  *Queue
	repo   repository.JobRepository
	stopCh chan struct{}
}

// NewManager wires a queue with its maintenance loop.
func NewManager(queue *Queue, repo repository.JobRepository) *Manager {
	return &Manager{
		queue:  queue,
		repo:   repo,
		stopCh: make(chan struct{}),
	}
}

// Queue exposes the underlying queue for enqueue notifications and stats.
func (m *Manager) Queue() *Queue {
	return m.queue
}

// Start launches the workers and the stuck-job sweeper.
func (m *Manager) Start() {
	m.queue.Start()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.sweepStuckJobs()
			}
		}
	}()

	log.Info("[JobQueue] Manager started")
}

// Stop shuts down the sweeper and then the workers.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.queue.Stop()
	log.Info("[JobQueue] Manager stopped")
}

func (m *Manager) sweepStuckJobs() {
	recovered, err := m.repo.RequeueStuck(StuckJobThreshold, time.Now())
	if err != nil {
		log.Errorf("[JobQueue] Stuck-job sweep failed: %v", err)
		return
	}
	if recovered > 0 {
		log.Infof("[JobQueue] Requeued %d stuck job(s)", recovered)
	}
}

// QueueStats combines durable backlog counts from the DB with the live
// processing counters kept in Redis.
type QueueStats struct {
	Pending    int64            `json:"pending"`
	Processing int64            `json:"processing"`
	Dead       int64            `json:"dead"`
	Counters   map[string]int64 `json:"counters"`
}

// Stats reports the current queue state for the admin endpoint.
func (m *Manager) Stats(ctx context.Context) (*QueueStats, error) {
	stats := &QueueStats{}

	var err error
	if stats.Pending, err = m.repo.CountByStatus(models.JobStatusPending); err != nil {
		return nil, err
	}
	if stats.Processing, err = m.repo.CountByStatus(models.JobStatusProcessing); err != nil {
		return nil, err
	}
	if stats.Dead, err = m.repo.CountByStatus(models.JobStatusDead); err != nil {
		return nil, err
	}

	stats.Counters, err = m.queue.GetJobStats(ctx)
	if err != nil {
		// Live counters are informational; the durable counts still stand.
		log.Errorf("[JobQueue] Failed to read live counters: %v", err)
		stats.Counters = map[string]int64{}
	}

	return stats, nil
}
