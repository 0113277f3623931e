package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

func logStep(job *jobModel.Job, step jobModel.InternalStatus, log *logger_i.Logger) {
	job.CurrentStep = step
	log.Debug("Process", "Current Step", step)
}

func (s *service) jobError(log *logger_i.Logger, job jobModel.Job, err error) jobModel.Job {
	kind := pipelineErrors.KindOf(err)
	code := pipelineErrors.HTTPStatus(err)
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", pipelineErrors.ErrPipelineTimeout, err)
	}
	if pipelineErrors.IsClientError(err) {
		log.Warn("pipeline rejected input", "step", job.CurrentStep, "kind", kind, "error", err)
	} else {
		log.Error("pipeline step failed", "step", job.CurrentStep, "kind", kind, "error", err)
	}

	job.Error = jobModel.JobError{
		Code:    code,
		Kind:    string(kind),
		Message: err.Error(),
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeCaptionStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) error {
	logStep(job, jobModel.CaptionCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("caption", time.Since(start)) }()

	p := &job.JobPayload
	desc, err := s.captioner.Describe(ctx, p.Asset.Path, p.DescriptionMode, p.CaptionLang)
	if err != nil {
		return err
	}
	p.Description = desc.Text
	p.DescriptionMode = desc.Mode
	return nil
}

func (s *service) executeIndexStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) error {
	logStep(job, jobModel.IndexCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index", time.Since(start)) }()

	status, err := s.indexer.Index(ctx, job.JobPayload.Asset.ItemID, job.JobPayload.Description)
	if err != nil {
		return err
	}
	job.JobPayload.IndexStatus = status
	return nil
}

func (s *service) executeSpeechStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) error {
	logStep(job, jobModel.SpeechCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("speech", time.Since(start)) }()

	p := &job.JobPayload
	artifact, err := s.synthesizer.Synthesize(ctx, p.Description, p.Speaker, p.Language)
	if err != nil {
		return err
	}
	p.Speech = artifact
	p.Speaker = artifact.Speaker
	p.Language = artifact.Language
	return nil
}

// a lost recording only costs the default waveform lookup, the job still succeeds
func (s *service) saveRecording(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) {
	rec := commonModels.Recording{
		Id:        utils.GetNewUUID(),
		AudioPath: job.JobPayload.Speech.AudioPath,
		Text:      job.JobPayload.Description,
		CreatedAt: time.Now(),
	}
	if err := s.recordings.SaveRecording(ctx, rec); err != nil {
		log.Error("failed to save recording", "error", err)
		return
	}
	job.JobPayload.RecordingId = rec.Id
}

func (s *service) cleanScratch(log *logger_i.Logger, job *jobModel.Job) {
	if s.scratch == nil {
		return
	}
	if err := s.scratch.Remove(job.JobPayload.Asset); err != nil {
		log.Warn("failed to remove scratch upload", "path", job.JobPayload.Asset.Path, "error", err)
		return
	}
	job.JobPayload.ScratchClean = true
}
