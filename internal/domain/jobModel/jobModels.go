package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UploadInit  InternalStatus = "UploadInit"
	CaptionCall InternalStatus = "Caption"
	IndexCall   InternalStatus = "Index"
	SpeechCall  InternalStatus = "Speech"
	Error       InternalStatus = "Error"
	Complete    InternalStatus = "Complete"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type JobPayload struct {
	//inputs
	Asset           commonModels.UploadedAsset   `json:"asset"`
	DescriptionMode commonModels.DescriptionMode `json:"description_mode"`
	CaptionLang     string                       `json:"lang"`
	Speaker         string                       `json:"speaker"`
	Language        string                       `json:"language"`

	//outputs
	Description  string                      `json:"description,omitempty"`
	IndexStatus  commonModels.IndexStatus    `json:"index_status,omitempty"`
	RecordingId  string                      `json:"recording_id,omitempty"`
	Speech       commonModels.SpeechArtifact `json:"speech,omitempty"`
	ScratchClean bool                        `json:"scratch_clean,omitempty"`
}

func (j Job) Failed() bool {
	return j.Status == JobStatusError
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

type RecordingStore interface {
	SaveRecording(ctx context.Context, rec commonModels.Recording) error
	GetRecording(ctx context.Context, id string) (commonModels.Recording, bool)
	LatestRecording(ctx context.Context) (commonModels.Recording, bool)
}
