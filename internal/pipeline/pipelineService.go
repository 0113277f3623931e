package pipeline

import (
	"context"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/indexer"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

/*
Service is the only thing the worker pool talks to.

The private struct holds the stage collaborators (captioner, indexer,
synthesizer, stores). main builds them once and injects them here, tests
swap any of them for a mock.
*/
type Service interface {
	Process(ctx context.Context, job jobModel.Job) jobModel.Job
	Search(ctx context.Context, query string, limit int) ([]commonModels.SearchHit, error)
}

// ScratchCleaner removes an upload once it is no longer needed.
type ScratchCleaner interface {
	Remove(asset commonModels.UploadedAsset) error
}

type service struct {
	captioner   caption.Service
	indexer     indexer.Service
	synthesizer speech.Service
	recordings  jobModel.RecordingStore
	scratch     ScratchCleaner
	logger      *logger_i.Logger
}

func NewService(captioner caption.Service, idx indexer.Service, synth speech.Service, recordings jobModel.RecordingStore, scratch ScratchCleaner) Service {
	return &service{
		captioner:   captioner,
		indexer:     idx,
		synthesizer: synth,
		recordings:  recordings,
		scratch:     scratch,
		logger:      logger_i.NewLogger("Pipeline"),
	}
}

// Process runs caption, index and speech in order. The first failing stage stops the job.
func (s *service) Process(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.FromContext(ctx).With("jobId", job.Id, "itemId", job.JobPayload.Asset.ItemID)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("pipeline", time.Since(start)) }()

	if err := s.executeCaptionStep(ctx, log, &job); err != nil {
		return s.jobError(log, job, err)
	}
	if err := s.executeIndexStep(ctx, log, &job); err != nil {
		return s.jobError(log, job, err)
	}
	if err := s.executeSpeechStep(ctx, log, &job); err != nil {
		return s.jobError(log, job, err)
	}

	s.saveRecording(ctx, log, &job)
	s.cleanScratch(log, &job)

	job.CurrentStep = jobModel.Complete
	log.Info("pipeline complete", "indexStatus", job.JobPayload.IndexStatus, "audio", job.JobPayload.Speech.AudioPath)
	return job
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]commonModels.SearchHit, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("search", time.Since(start)) }()
	return s.indexer.Search(ctx, query, limit)
}
