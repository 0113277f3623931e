package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

// Engine is the opaque text to speech collaborator.
type Engine interface {
	Synthesize(ctx context.Context, text string, speaker string, language string) (PCM, error)
}

type Service interface {
	Synthesize(ctx context.Context, text string, speaker string, language string) (commonModels.SpeechArtifact, error)
}

type synthesizer struct {
	engine   Engine
	audioDir string
	baseURL  string
	logger   *logger_i.Logger
}

// New writes artifacts to audioDir and builds their URLs under baseURL/audio/.
func New(engine Engine, audioDir string, baseURL string) (Service, error) {
	if err := os.MkdirAll(audioDir, 0750); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &synthesizer{
		engine:   engine,
		audioDir: audioDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger_i.NewLogger("Synthesizer"),
	}, nil
}

func (s *synthesizer) Synthesize(ctx context.Context, text string, speaker string, language string) (commonModels.SpeechArtifact, error) {
	log := s.logger.FromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return commonModels.SpeechArtifact{}, pipelineErrors.ErrMissingText
	}
	speaker, language, err := ResolveVoice(speaker, language)
	if err != nil {
		return commonModels.SpeechArtifact{}, err
	}

	start := time.Now()
	pcm, err := s.engine.Synthesize(ctx, text, speaker, language)
	elapsed := time.Since(start)
	metrics.CaptureExecutionMetrics("speech_synthesis", elapsed)
	if err != nil {
		log.Error("speech engine failed", "error", err)
		return commonModels.SpeechArtifact{}, fmt.Errorf("%w: %w", pipelineErrors.ErrSpeechGenerationFailed, err)
	}
	if pcm.Empty() {
		return commonModels.SpeechArtifact{}, fmt.Errorf("%w: engine returned no audio", pipelineErrors.ErrSpeechGenerationFailed)
	}

	name := utils.GetNewUUID() + ".wav"
	path := filepath.Join(s.audioDir, name)
	if err = WriteWAV(path, pcm); err != nil {
		return commonModels.SpeechArtifact{}, fmt.Errorf("%w: %w", pipelineErrors.ErrSpeechGenerationFailed, err)
	}

	artifact := commonModels.SpeechArtifact{
		AudioPath:         path,
		AudioURL:          s.baseURL + "/audio/" + name,
		Speaker:           speaker,
		Language:          language,
		SynthesisDuration: elapsed,
		AudioLength:       time.Duration(float64(len(pcm.Samples)) / float64(pcm.SampleRate) * float64(time.Second)),
		WordCount:         WordCount(text),
		SampleRate:        pcm.SampleRate,
	}
	log.Info("speech synthesized", "file", name, "speaker", speaker, "seconds", artifact.AudioLength.Seconds())
	return artifact, nil
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}
