package job

import (
	"context"
	"sync/atomic"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var logJS = logger_i.NewLogger("JobService")

// Submission pairs a job with the channel its finished state is sent back on.
type Submission struct {
	Job    jobModel.Job
	Result chan jobModel.Job
}

type Service struct {
	JobChannel        chan Submission
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan Submission
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}

// Submit queues the job and blocks until a worker replies or ctx ends.
// The queued state is persisted first so /status can see the job right away.
func (s *Service) Submit(ctx context.Context, job jobModel.Job) (jobModel.Job, error) {
	log := logJS.FromContext(ctx).With("jobId", job.Id)

	job.Status = jobModel.JobStatusQueued
	if err := s.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to save queued job", "err", err)
	}

	sub := Submission{Job: job, Result: make(chan jobModel.Job, 1)}
	metrics.IncrementJobsInQueue()

	// blocking send keeps a burst of uploads from overwhelming the pool
	select {
	case s.JobChannel <- sub:
	case <-ctx.Done():
		metrics.DecrementJobsInQueue()
		log.Warn("Gave up before the job was queued", "err", ctx.Err())
		return job, ctx.Err()
	}
	log.Debug("Job queued")

	// a new worker every RequestsPerNewWorkerCount jobs, idle ones retire on their own
	count := atomic.AddInt64(&s.RequestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		select {
		case s.DispatcherChannel <- true:
		default:
			log.Debug("Dispatcher busy, skipping scale signal", "requestCount", count)
		}
	}

	select {
	case done := <-sub.Result:
		return done, nil
	case <-ctx.Done():
		log.Warn("Stopped waiting for job", "err", ctx.Err())
		return job, ctx.Err()
	}
}

func (s *Service) GetJob(ctx context.Context, id string) (jobModel.Job, bool) {
	if id == "" {
		return jobModel.Job{}, false
	}
	return s.JobStore.GetJob(ctx, id)
}
