package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
	jobmodel "github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
)

// executeJob runs the pipeline under its own timeout, detached from the
// request, so a client that disconnects does not abort a half-written index entry.
func executeJob(job jobmodel.Job) jobmodel.Job {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, pipelineTimeout)
	defer cancel()
	log := logger.FromContext(ctx).With("jobId", job.Id)
	log.Debug("Processing job")

	job = saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = _pipelineService.Process(ctx, job)

	job.EndTime = time.Now()
	if job.Failed() {
		job.CurrentStep = jobmodel.Error
		return saveJobState(ctx, job, jobmodel.JobStatusError)
	}
	return saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	count := atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", count)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) jobmodel.Job {
	job.Status = jobStatus
	// the store write must land even when the pipeline used up the deadline
	if err := _jobService.JobStore.SaveJob(context.WithoutCancel(ctx), job); err != nil {
		logger.Error("Failed to update job state", "err", err)
	}
	return job
}
