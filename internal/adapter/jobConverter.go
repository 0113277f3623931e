package adapter

import (
	"github.com/akolanti/CaptionSpeech/internal/api"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
)

func ToUploadResponse(job jobModel.Job) api.UploadResponse {
	p := job.JobPayload
	return api.UploadResponse{
		JobId:                    job.Id,
		ItemId:                   p.Asset.ItemID,
		Description:              p.Description,
		DescriptionMode:          string(p.DescriptionMode),
		IndexStatus:              string(p.IndexStatus),
		RecordingId:              p.RecordingId,
		AudioPath:                p.Speech.AudioPath,
		AudioURL:                 p.Speech.AudioURL,
		Speaker:                  p.Speech.Speaker,
		Language:                 p.Speech.Language,
		SynthesisDurationSeconds: p.Speech.SynthesisDuration.Seconds(),
		AudioLengthSeconds:       p.Speech.AudioLength.Seconds(),
		WordCount:                p.Speech.WordCount,
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Kind:    job.Error.Kind,
			Message: job.Error.Message,
		}
	}

	var result *api.UploadResponse
	if job.Status == jobModel.JobStatusComplete {
		r := ToUploadResponse(job)
		result = &r
	}

	return api.JobResponse{
		Id:          job.Id,
		Status:      string(job.Status),
		CurrentStep: string(job.CurrentStep),
		Result:      result,
		Error:       errorPtr,
		StartTime:   job.CreatedTime,
		EndTime:     job.EndTime,
	}
}

func ToSearchResponse(query string, hits []commonModels.SearchHit) api.SearchResponse {
	results := make([]api.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, api.SearchResult{ItemId: h.ItemID, Description: h.Description, Score: h.Score})
	}
	return api.SearchResponse{Query: query, Results: results}
}

func ToLatestRecordings(files []commonModels.RecordingFile) api.LatestRecordingsResponse {
	out := make([]api.RecordingInfo, 0, len(files))
	for _, f := range files {
		out = append(out, api.RecordingInfo{Name: f.Name, URL: f.URL, Modified: f.Modified})
	}
	return api.LatestRecordingsResponse{Recordings: out}
}

func BadRequest(message string, kind string, traceId string) api.ErrorResponse {
	return api.ErrorResponse{
		Error:   message,
		Kind:    kind,
		TraceId: traceId,
	}
}

func FromError(err error, traceId string) api.ErrorResponse {
	return BadRequest(err.Error(), string(pipelineErrors.KindOf(err)), traceId)
}
