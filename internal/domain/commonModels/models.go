package commonModels

import (
	"time"
)

type DescriptionMode string

const (
	ModeSummary  DescriptionMode = "summary"
	ModeDetailed DescriptionMode = "detailed"
)

type IndexStatus string

const (
	IndexInserted IndexStatus = "inserted"
	IndexSkipped  IndexStatus = "skipped"
)

// UploadedAsset is the scratch copy of an upload. It lives until the pipeline succeeds.
type UploadedAsset struct {
	StoredName   string `json:"stored_name"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Path         string `json:"path"`
	ItemID       string `json:"item_id"`
}

type Description struct {
	Text string          `json:"text"`
	Mode DescriptionMode `json:"mode"`
}

type IndexEntry struct {
	ItemID      string    `json:"item_id"`
	Vector      []float32 `json:"-"`
	Description string    `json:"description"`
}

type SearchHit struct {
	ItemID      string  `json:"item_id"`
	Description string  `json:"description"`
	Score       float32 `json:"score"`
}

type SpeechArtifact struct {
	AudioPath         string        `json:"audio_path"`
	AudioURL          string        `json:"audio_url"`
	Speaker           string        `json:"speaker"`
	Language          string        `json:"language"`
	SynthesisDuration time.Duration `json:"synthesis_duration"`
	AudioLength       time.Duration `json:"audio_length"`
	WordCount         int           `json:"word_count"`
	SampleRate        int           `json:"sample_rate"`
}

// Recording is the handle the waveform renderer works from.
type Recording struct {
	Id        string    `json:"id"`
	AudioPath string    `json:"audio_path"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type RecordingFile struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
}
