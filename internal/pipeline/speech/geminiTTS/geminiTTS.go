package geminiTTS

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"google.golang.org/genai"
)

var logger = logger_i.NewLogger("tts_gemini")

type engine struct {
	client    *genai.Client
	modelName string
}

func NewEngine(client *genai.Client, modelName string) speech.Engine {
	return &engine{client: client, modelName: modelName}
}

func (e *engine) Synthesize(ctx context.Context, text string, speaker string, language string) (speech.PCM, error) {
	log := logger.FromContext(ctx)

	result, err := e.client.Models.GenerateContent(ctx, e.modelName, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: speaker},
			},
			LanguageCode: language,
		},
	})
	if err != nil {
		log.Error("Gemini speech call failed", "error", err)
		return speech.PCM{}, err
	}

	raw, mime := collectAudio(result)
	if len(raw) == 0 {
		return speech.PCM{}, errors.New("gemini returned no audio")
	}

	pcm := speech.PCM{
		Samples:    speech.DecodePCM16LE(raw),
		SampleRate: SampleRate(mime),
		BitDepth:   config.SpeechBitDepth,
	}
	log.Debug("Gemini speech done", "mime", mime, "samples", len(pcm.Samples))
	return pcm, nil
}

func collectAudio(result *genai.GenerateContentResponse) ([]byte, string) {
	if result == nil {
		return nil, ""
	}
	var raw []byte
	mime := ""
	for _, cand := range result.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			raw = append(raw, part.InlineData.Data...)
			if mime == "" {
				mime = part.InlineData.MIMEType
			}
		}
		if len(raw) > 0 {
			break
		}
	}
	return raw, mime
}

// SampleRate reads rate=N from a mime like audio/L16;codec=pcm;rate=24000.
func SampleRate(mime string) int {
	for _, param := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && strings.EqualFold(k, "rate") {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return config.GeminiSpeechRate
}
