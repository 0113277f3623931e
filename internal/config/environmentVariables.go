package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	RateLimiterIdleTTL          = 10 * time.Minute

	//index - all-MiniLM-L6-v2 width, kept so older entries stay comparable
	EmbeddingOutputDimensionality int32 = 384
	EmbeddingDBName                     = "image_descriptions"
	SearchResultLimit                   = 5
	MaxSearchResultLimit                = 20

	//per item id insert lock
	IndexLockTTL          = 30 * time.Second
	IndexLockRetryBackoff = 50 * time.Millisecond

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts - caption + speech can take a while so write timeout covers the pipeline
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second
	PipelineTimeout        = 90 * time.Second

	//job requests buffer limit
	BufferLimit = 100

	//upload
	MaxUploadSize = 32 << 20 //32mb

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1
	QdrantKeepAliveTimeout  = 30 * time.Second

	//caption token budgets per description mode
	SummaryCaptionBudget  int32 = 50
	DetailedCaptionBudget int32 = 100
	CaptionPrompt               = "Describe this image in one plain sentence suitable for reading aloud."
	DetailedCaptionPrompt       = "Describe this image in a few plain sentences suitable for reading aloud. Mention the main subject, colors and setting."

	//models
	GeminiCaptionModel   = "gemini-2.5-flash-lite"
	GeminiSpeechModel    = "gemini-2.5-flash-preview-tts"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAICaptionModel   = "gpt-4o-mini"

	ModelTemperature      float32 = 0.2
	CaptionServiceTimeout         = 60 * time.Second

	//speech
	DefaultSpeaker       = "Kore"
	DefaultLanguage      = "en-US"
	DefaultCaptionLang   = "en"
	GeminiSpeechRate     = 24000
	SpeechBitDepth       = 16
	SpeechChannels       = 1
	TTSServiceTimeout    = 60 * time.Second
	TTSServiceHealthWait = 10 * time.Second

	//waveform
	WaveformTitleLimit = 30
	WaveformWidthInch  = 10
	WaveformHeightInch = 4
	WaveformMaxPoints  = 4000

	//recordings
	LatestRecordingsDefault = 6
	LatestRecordingsMax     = 50

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis has 16 DB we can use
	RedisJobStore       = 0
	RedisRecordingStore = 1
	RedisLockStore      = 2

	//redis client
	RedisPingTimeout = 3 * time.Second
	RedisIOTimeout   = 30 * time.Second

	//retention
	JobStoreTTL            = 24 * time.Hour
	RedisRecordingStoreTTL = 7 * 24 * time.Hour
	RecordingHistoryLimit  = 100
)
