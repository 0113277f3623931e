package httpTTS

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

const (
	apiGenerateSpeech = "/v1/generate/speech"
	apiHealth         = "/health"
	contentTypeWAV    = "audio/wav"
)

var ErrEmptyAudio = errors.New("received empty audio data")

var logger = logger_i.NewLogger("tts_http")

type speechRequest struct {
	Text        string  `json:"text"`
	Speaker     string  `json:"speaker,omitempty"`
	Language    string  `json:"language"`
	Temperature float64 `json:"temperature"`
}

type errorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Engine calls a standalone TTS service that answers with a wav body.
type Engine struct {
	httpClient *http.Client
	baseURL    string
}

func NewEngine(baseURL string, client *http.Client) *Engine {
	return &Engine{httpClient: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (e *Engine) Synthesize(ctx context.Context, text string, speaker string, language string) (speech.PCM, error) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(speechRequest{Text: text, Speaker: speaker, Language: language, Temperature: 0.75})
	if err != nil {
		return speech.PCM{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+apiGenerateSpeech, bytes.NewReader(body))
	if err != nil {
		return speech.PCM{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", contentTypeWAV)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return speech.PCM{}, fmt.Errorf("tts service at %s: %w", e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return speech.PCM{}, parseError(resp)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, contentTypeWAV) {
		return speech.PCM{}, fmt.Errorf("unexpected content type: expected %s, got %s", contentTypeWAV, ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return speech.PCM{}, fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return speech.PCM{}, ErrEmptyAudio
	}

	pcm, err := speech.DecodeWAV(bytes.NewReader(data))
	if err != nil {
		return speech.PCM{}, err
	}
	log.Debug("tts service done", "bytes", len(data), "rate", pcm.SampleRate)
	return pcm, nil
}

func (e *Engine) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+apiHealth, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed for %s: %w", e.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts service unhealthy: %s", resp.Status)
	}
	return nil
}

func parseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var er errorResponse
	if json.Unmarshal(raw, &er) == nil && er.Detail != "" {
		return fmt.Errorf("tts service error (%s): %s (code: %s)", resp.Status, er.Detail, er.ErrorCode)
	}
	return fmt.Errorf("tts service returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
}
