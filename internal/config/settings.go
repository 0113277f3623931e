package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")
var ErrInvalidSetting = errors.New("invalid configuration")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderHTTP   = "http"
)

// Settings are the values that change per deployment. Tunables that don't live in the const block.
type Settings struct {
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8000"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8000"`

	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	CaptionProvider string `envconfig:"CAPTION_PROVIDER" default:"gemini"`
	SpeechProvider  string `envconfig:"SPEECH_PROVIDER" default:"gemini"`
	TTSServiceURL   string `envconfig:"TTS_SERVICE_URL" default:"http://localhost:5002"`

	QdrantHost string `envconfig:"QDRANT_HOST" default:"localhost"`
	QdrantPort int    `envconfig:"QDRANT_PORT" default:"6334"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	//empty token disables bearer auth
	AuthToken string `envconfig:"AUTH_TOKEN"`

	ScratchDir string `envconfig:"SCRATCH_DIR" default:"temp"`
	AudioDir   string `envconfig:"AUDIO_DIR" default:"output_audio"`
	PlotDir    string `envconfig:"PLOT_DIR" default:"plots"`
}

func Load() (*Settings, error) {
	// a missing .env is fine, the shell may already carry everything
	_ = godotenv.Load(".env")

	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	s.CaptionProvider = strings.ToLower(strings.TrimSpace(s.CaptionProvider))
	s.SpeechProvider = strings.ToLower(strings.TrimSpace(s.SpeechProvider))
	s.PublicBaseURL = strings.TrimRight(s.PublicBaseURL, "/")

	// embeddings always go through genai
	if s.GoogleAPIKey == "" {
		return fmt.Errorf("%w: GOOGLE_API_KEY", ErrMissingRequired)
	}

	switch s.CaptionProvider {
	case ProviderGemini:
	case ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: CAPTION_PROVIDER %q", ErrInvalidSetting, s.CaptionProvider)
	}

	switch s.SpeechProvider {
	case ProviderGemini:
	case ProviderHTTP:
		if s.TTSServiceURL == "" {
			return fmt.Errorf("%w: TTS_SERVICE_URL", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: SPEECH_PROVIDER %q", ErrInvalidSetting, s.SpeechProvider)
	}

	if s.ScratchDir == "" || s.AudioDir == "" || s.PlotDir == "" {
		return fmt.Errorf("%w: SCRATCH_DIR, AUDIO_DIR and PLOT_DIR", ErrMissingRequired)
	}
	return nil
}
