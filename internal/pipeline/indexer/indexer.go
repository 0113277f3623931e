package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/embedding"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/vectorDB"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var ErrEmptyItemID = errors.New("empty item id")

type Service interface {
	// Index writes the description once per item id. A repeat id is reported as skipped.
	Index(ctx context.Context, itemID string, description string) (commonModels.IndexStatus, error)
	Search(ctx context.Context, query string, limit int) ([]commonModels.SearchHit, error)
}

type indexer struct {
	index         vectorDB.Index
	docEmbedder   embedding.Embedder
	queryEmbedder embedding.Embedder
	locker        Locker
	dimension     int
	logger        *logger_i.Logger
}

type Options struct {
	Index         vectorDB.Index
	DocEmbedder   embedding.Embedder
	QueryEmbedder embedding.Embedder // falls back to DocEmbedder
	Locker        Locker             // falls back to an in-process KeyedMutex
}

func New(opts Options) Service {
	if opts.QueryEmbedder == nil {
		opts.QueryEmbedder = opts.DocEmbedder
	}
	if opts.Locker == nil {
		opts.Locker = NewKeyedMutex()
	}
	return &indexer{
		index:         opts.Index,
		docEmbedder:   opts.DocEmbedder,
		queryEmbedder: opts.QueryEmbedder,
		locker:        opts.Locker,
		dimension:     int(config.EmbeddingOutputDimensionality),
		logger:        logger_i.NewLogger("Indexer"),
	}
}

func (i *indexer) Index(ctx context.Context, itemID string, description string) (commonModels.IndexStatus, error) {
	if itemID == "" {
		return "", ErrEmptyItemID
	}
	log := i.logger.FromContext(ctx).With("itemId", itemID)

	unlock, err := i.locker.Lock(ctx, itemID)
	if err != nil {
		return "", fmt.Errorf("lock item %q: %w", itemID, err)
	}
	defer unlock()

	start := time.Now()
	_, found, err := i.index.Lookup(ctx, itemID)
	metrics.CaptureExecutionMetrics("index_lookup", time.Since(start))
	if err != nil {
		// a failed lookup is treated as not found
		log.Warn("index lookup failed, inserting anyway", "error", err)
	}
	if found {
		log.Info("item already indexed")
		metrics.IncrementIndexWrites(string(commonModels.IndexSkipped))
		return commonModels.IndexSkipped, nil
	}

	start = time.Now()
	base, err := i.docEmbedder.GetEmbedding(ctx, description)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: embedding: %w", pipelineErrors.ErrDownstreamUnavailable, err)
	}

	entry := commonModels.IndexEntry{
		ItemID:      itemID,
		Vector:      embedding.Prepare(base, i.dimension),
		Description: description,
	}

	start = time.Now()
	err = i.index.Insert(ctx, entry)
	metrics.CaptureExecutionMetrics("index_insert", time.Since(start))
	if err != nil {
		metrics.IncrementIndexWrites("error")
		return "", fmt.Errorf("%w: index insert: %w", pipelineErrors.ErrDownstreamUnavailable, err)
	}

	log.Info("item indexed", "nativeDims", len(base))
	metrics.IncrementIndexWrites(string(commonModels.IndexInserted))
	return commonModels.IndexInserted, nil
}

func (i *indexer) Search(ctx context.Context, query string, limit int) ([]commonModels.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pipelineErrors.ErrMissingText
	}
	if limit <= 0 {
		limit = config.SearchResultLimit
	}
	if limit > config.MaxSearchResultLimit {
		limit = config.MaxSearchResultLimit
	}

	base, err := i.queryEmbedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding: %w", pipelineErrors.ErrDownstreamUnavailable, err)
	}

	start := time.Now()
	hits, err := i.index.Search(ctx, embedding.Prepare(base, i.dimension), limit)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %w", pipelineErrors.ErrDownstreamUnavailable, err)
	}
	return hits, nil
}
