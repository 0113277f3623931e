package caption

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Model is the opaque vision to text collaborator.
type Model interface {
	Caption(ctx context.Context, req Request) (string, error)
}

type Request struct {
	Image     []byte
	MIMEType  string
	Prompt    string
	MaxTokens int32
	Lang      string
}

type Service interface {
	Describe(ctx context.Context, imagePath string, mode commonModels.DescriptionMode, lang string) (commonModels.Description, error)
}

type captioner struct {
	model  Model
	logger *logger_i.Logger
}

func New(model Model) Service {
	return &captioner{model: model, logger: logger_i.NewLogger("Captioner")}
}

func ParseMode(raw string) (commonModels.DescriptionMode, error) {
	switch commonModels.DescriptionMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", commonModels.ModeSummary:
		return commonModels.ModeSummary, nil
	case commonModels.ModeDetailed:
		return commonModels.ModeDetailed, nil
	}
	return "", fmt.Errorf("%w: %q", pipelineErrors.ErrInvalidDescriptionMode, raw)
}

// Budget is the generation cap per mode, in tokens.
func Budget(mode commonModels.DescriptionMode) int32 {
	if mode == commonModels.ModeDetailed {
		return config.DetailedCaptionBudget
	}
	return config.SummaryCaptionBudget
}

func (c *captioner) Describe(ctx context.Context, imagePath string, mode commonModels.DescriptionMode, lang string) (commonModels.Description, error) {
	log := c.logger.FromContext(ctx)

	mode, err := ParseMode(string(mode))
	if err != nil {
		return commonModels.Description{}, err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return commonModels.Description{}, fmt.Errorf("read image: %w", err)
	}

	format, err := DetectFormat(data)
	if err != nil {
		log.Warn("image did not decode", "path", imagePath, "error", err)
		return commonModels.Description{}, err
	}

	text, err := c.model.Caption(ctx, Request{
		Image:     data,
		MIMEType:  "image/" + format,
		Prompt:    prompt(mode, lang),
		MaxTokens: Budget(mode),
		Lang:      lang,
	})
	if err != nil {
		log.Error("caption model failed", "error", err)
		return commonModels.Description{}, fmt.Errorf("%w: %w", pipelineErrors.ErrDownstreamUnavailable, err)
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return commonModels.Description{}, fmt.Errorf("%w: empty caption", pipelineErrors.ErrDownstreamUnavailable)
	}

	log.Debug("caption generated", "mode", mode, "words", len(strings.Fields(text)))
	return commonModels.Description{Text: text, Mode: mode}, nil
}

// DetectFormat decodes just the header, enough to reject anything that is not a real image.
func DetectFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", pipelineErrors.ErrInvalidImageFormat, err)
	}
	return format, nil
}

func prompt(mode commonModels.DescriptionMode, lang string) string {
	p := config.CaptionPrompt
	if mode == commonModels.ModeDetailed {
		p = config.DetailedCaptionPrompt
	}
	lang = strings.TrimSpace(lang)
	if lang != "" && !strings.EqualFold(lang, config.DefaultCaptionLang) {
		p += " Answer in the language with code " + lang + "."
	}
	return p
}
