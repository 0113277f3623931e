package openaiCaption

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger = logger_i.NewLogger("caption_openai")

type captionClient struct {
	client    openai.Client
	modelName string
}

// NewCaptionModel talks to the chat completions API. extra options let tests point it at a fake server.
func NewCaptionModel(apikey string, modelName string, httpClient *http.Client, extra ...option.RequestOption) caption.Model {
	opts := []option.RequestOption{option.WithAPIKey(apikey)}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	opts = append(opts, extra...)
	return &captionClient{client: openai.NewClient(opts...), modelName: modelName}
}

func (c *captionClient) Caption(ctx context.Context, req caption.Request) (string, error) {
	log := logger.FromContext(ctx)

	dataURI := "data:" + req.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(req.Image)
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURI}),
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.modelName),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		log.Error("OpenAI caption call failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
