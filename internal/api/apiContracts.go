package api

import "time"

type UploadResponse struct {
	JobId                    string  `json:"job_id" example:"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"`
	ItemId                   string  `json:"item_id" example:"red"`
	Description              string  `json:"description" example:"a plain red square"`
	DescriptionMode          string  `json:"description_mode" example:"summary"`
	IndexStatus              string  `json:"index_status" example:"inserted"`
	RecordingId              string  `json:"recording_id,omitempty"`
	AudioPath                string  `json:"audio_path"`
	AudioURL                 string  `json:"audio_url"`
	Speaker                  string  `json:"speaker" example:"Kore"`
	Language                 string  `json:"language" example:"en-US"`
	SynthesisDurationSeconds float64 `json:"synthesis_duration_seconds"`
	AudioLengthSeconds       float64 `json:"audio_length_seconds"`
	WordCount                int     `json:"word_count"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid file type, only images are accepted"`
	Kind    string `json:"kind" example:"InvalidFileType"`
	TraceId string `json:"trace_id,omitempty"`
}

type JobResponse struct {
	Id          string            `json:"id"`
	Status      string            `json:"status" example:"COMPLETE"`
	CurrentStep string            `json:"current_step" example:"Complete"`
	Result      *UploadResponse   `json:"result,omitempty"`
	Error       *JobOutgoingError `json:"error,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"500"`
	Kind    string `json:"kind" example:"DownstreamUnavailable"`
	Message string `json:"message"`
}

type AudioControlResponse struct {
	Action    string `json:"action" example:"play"`
	AudioPath string `json:"audio_path"`
	Message   string `json:"message" example:"Playing audio"`
}

type RecordingInfo struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Modified time.Time `json:"modified"`
}

type LatestRecordingsResponse struct {
	Recordings []RecordingInfo `json:"recordings"`
}

type SearchResult struct {
	ItemId      string  `json:"item_id"`
	Description string  `json:"description"`
	Score       float32 `json:"score"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
