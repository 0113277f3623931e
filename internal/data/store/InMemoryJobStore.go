package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

type storedJob struct {
	job     jobModel.Job
	savedAt time.Time
}

// InMemoryJobStore is the fallback when redis is offline. Jobs expire after ttl
// like their redis counterparts, expired entries are dropped on read.
type InMemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]storedJob
	ttl  time.Duration
	now  func() time.Time
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return NewInMemoryJobStoreWithTTL(config.JobStoreTTL)
}

func NewInMemoryJobStoreWithTTL(ttl time.Duration) *InMemoryJobStore {
	return &InMemoryJobStore{
		jobs: make(map[string]storedJob),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Id] = storedJob{job: job, savedAt: s.now()}
	inMemLogger.FromContext(ctx).Debug("Saved job to store", "jobId", job.Id, "status", job.Status, "step", job.CurrentStep)
	return nil
}

func (s *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	s.mu.RLock()
	entry, found := s.jobs[jobId]
	s.mu.RUnlock()
	if !found {
		return jobModel.Job{}, false
	}
	if s.ttl > 0 && s.now().Sub(entry.savedAt) > s.ttl {
		s.DeleteJob(ctx, jobId)
		return jobModel.Job{}, false
	}
	return entry.job, true
}

func (s *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}
