package handlers

import (
	"context"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/job"
	"github.com/akolanti/CaptionSpeech/internal/pipeline"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/recordings"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/upload"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/waveform"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var (
	handlerInstance *JobHandler
	logJH           = logger_i.NewLogger("JobHandler")
)

// Dependencies are built once in main and shared by every request.
type Dependencies struct {
	Jobs     *job.Service
	Pipeline pipeline.Service
	Uploads  *upload.Store
	Renderer *waveform.Renderer
	Library  *recordings.Library
}

type JobHandler struct {
	deps Dependencies
}

func InitJobHandler(deps Dependencies) {
	handlerInstance = &JobHandler{deps: deps}
	// picked up again so they use the handler logger_i.Init installed
	logJH = logger_i.NewLogger("JobHandler")
	logRH = logger_i.NewLogger("RequestHandler")
	logJH.Info("Starting job handler")
}

// uploadRequest is the validated form of a POST /upload-image call.
type uploadRequest struct {
	asset   commonModels.UploadedAsset
	mode    commonModels.DescriptionMode
	lang    string
	speaker string
	voice   string
	traceId string
}

func (h *JobHandler) runUpload(ctx context.Context, req uploadRequest) (jobModel.Job, error) {
	newJob := jobModel.Job{
		Id:          utils.GetNewUUID(),
		TraceId:     req.traceId,
		CreatedTime: time.Now(),
		CurrentStep: jobModel.UploadInit,
		JobPayload: jobModel.JobPayload{
			Asset:           req.asset,
			DescriptionMode: req.mode,
			CaptionLang:     req.lang,
			Speaker:         req.speaker,
			Language:        req.voice,
		},
	}
	logJH.FromContext(ctx).Info("Created new job", "jobId", newJob.Id, "itemId", req.asset.ItemID)

	waitCtx, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()
	return h.deps.Jobs.Submit(waitCtx, newJob)
}

func GetJobStatus(ctx context.Context, id string) (jobModel.Job, bool) {
	if handlerInstance == nil {
		return jobModel.Job{}, false
	}
	return handlerInstance.deps.Jobs.GetJob(ctx, id)
}
