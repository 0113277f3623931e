package gemini

import (
	"context"
	"errors"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"google.golang.org/genai"
)

var logger = logger_i.NewLogger("caption_gemini")

type captionClient struct {
	client    *genai.Client
	modelName string
}

// NewClient builds the shared genai client. genai holds no connection to close,
// ctx only bounds client construction.
func NewClient(ctx context.Context, apikey string) (*genai.Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, err
	}
	logger.Info("Gemini client created")
	return c, nil
}

func NewCaptionModel(client *genai.Client, modelName string) caption.Model {
	return &captionClient{client: client, modelName: modelName}
}

func (c *captionClient) Caption(ctx context.Context, req caption.Request) (string, error) {
	log := logger.FromContext(ctx)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Image, req.MIMEType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: req.MaxTokens,
		Temperature:     genai.Ptr[float32](config.ModelTemperature),
	})
	if err != nil {
		log.Error("Gemini caption call failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned no result")
	}

	log.Debug("Gemini caption done", "model", c.modelName)
	return result.Text(), nil
}
