package googleEmbedding

import (
	"context"
	"errors"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/embedding"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"google.golang.org/genai"
)

var logger = logger_i.NewLogger("google_embedding")
var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi    *genai.Client
	model    string
	taskType string
}

// NewGoogleEmbedder stores descriptions as documents.
func NewGoogleEmbedder(c *genai.Client, modelName string) embedding.Embedder {
	logger.Debug("Google Embedding model name: " + modelName)
	return &client{genAi: c, model: modelName, taskType: "RETRIEVAL_DOCUMENT"}
}

// NewGoogleQueryEmbedder is the search side of the same model.
func NewGoogleQueryEmbedder(c *genai.Client, modelName string) embedding.Embedder {
	return &client{genAi: c, model: modelName, taskType: "RETRIEVAL_QUERY"}
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	log := logger.FromContext(ctx)

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             c.taskType,
	})
	if err != nil {
		log.Error("Error getting Embeddings from Google", "error", err)
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, errors.New("google returned no embeddings")
	}
	return result.Embeddings[0].Values, nil
}
