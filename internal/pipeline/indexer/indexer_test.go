package indexer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/vectorDB"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
	calls          int32
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	// 768 native dims, the indexer has to bring it down to 384
	v := make([]float32, 768)
	v[0] = float32(len(text))
	v[1] = 1
	return v, nil
}

// countingIndex wraps the in-memory index and counts writes, with optional failures.
type countingIndex struct {
	*vectorDB.InMemoryIndex
	inserts     int32
	OnLookupErr error
	OnInsertErr error
	slowLookup  time.Duration
}

func (c *countingIndex) Lookup(ctx context.Context, id string) (commonModels.IndexEntry, bool, error) {
	if c.slowLookup > 0 {
		time.Sleep(c.slowLookup)
	}
	if c.OnLookupErr != nil {
		return commonModels.IndexEntry{}, false, c.OnLookupErr
	}
	return c.InMemoryIndex.Lookup(ctx, id)
}

func (c *countingIndex) Insert(ctx context.Context, e commonModels.IndexEntry) error {
	if c.OnInsertErr != nil {
		return c.OnInsertErr
	}
	atomic.AddInt32(&c.inserts, 1)
	return c.InMemoryIndex.Insert(ctx, e)
}

func newCountingIndex() *countingIndex {
	return &countingIndex{InMemoryIndex: vectorDB.NewInMemoryIndex()}
}

func TestIndex_WriteOnce(t *testing.T) {
	ctx := context.Background()
	idx := newCountingIndex()
	em := &mockEmbedder{}
	svc := New(Options{Index: idx, DocEmbedder: em})

	status, err := svc.Index(ctx, "red", "a red square")
	require.NoError(t, err)
	assert.Equal(t, commonModels.IndexInserted, status)

	status, err = svc.Index(ctx, "red", "a crimson tile")
	require.NoError(t, err)
	assert.Equal(t, commonModels.IndexSkipped, status)

	entry, found, _ := idx.InMemoryIndex.Lookup(ctx, "red")
	require.True(t, found)
	assert.Equal(t, "a red square", entry.Description, "first description must win")
	assert.Len(t, entry.Vector, 384)
	assert.EqualValues(t, 1, atomic.LoadInt32(&idx.inserts))
	assert.EqualValues(t, 1, atomic.LoadInt32(&em.calls), "skipped items are not embedded")
}

func TestIndex_ConcurrentSameID(t *testing.T) {
	ctx := context.Background()
	idx := newCountingIndex()
	idx.slowLookup = 2 * time.Millisecond
	svc := New(Options{Index: idx, DocEmbedder: &mockEmbedder{}})

	const workers = 25
	var wg sync.WaitGroup
	var inserted int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := svc.Index(ctx, "dup", "same picture")
			if err == nil && status == commonModels.IndexInserted {
				atomic.AddInt32(&inserted, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, inserted)
	assert.EqualValues(t, 1, atomic.LoadInt32(&idx.inserts))
}

func TestIndex_LookupErrorStillInserts(t *testing.T) {
	idx := newCountingIndex()
	idx.OnLookupErr = errors.New("qdrant hiccup")
	svc := New(Options{Index: idx, DocEmbedder: &mockEmbedder{}})

	status, err := svc.Index(context.Background(), "red", "a red square")
	require.NoError(t, err)
	assert.Equal(t, commonModels.IndexInserted, status)
}

func TestIndex_DownstreamFailures(t *testing.T) {
	t.Run("embedding", func(t *testing.T) {
		em := &mockEmbedder{OnGetEmbedding: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("quota")
		}}
		svc := New(Options{Index: newCountingIndex(), DocEmbedder: em})
		_, err := svc.Index(context.Background(), "red", "x")
		assert.True(t, errors.Is(err, pipelineErrors.ErrDownstreamUnavailable))
	})

	t.Run("insert", func(t *testing.T) {
		idx := newCountingIndex()
		idx.OnInsertErr = errors.New("disk full")
		svc := New(Options{Index: idx, DocEmbedder: &mockEmbedder{}})
		_, err := svc.Index(context.Background(), "red", "x")
		assert.True(t, errors.Is(err, pipelineErrors.ErrDownstreamUnavailable))
	})

	t.Run("empty id", func(t *testing.T) {
		svc := New(Options{Index: newCountingIndex(), DocEmbedder: &mockEmbedder{}})
		_, err := svc.Index(context.Background(), "", "x")
		assert.ErrorIs(t, err, ErrEmptyItemID)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc := New(Options{Index: newCountingIndex(), DocEmbedder: &mockEmbedder{}})
	_, _ = svc.Index(ctx, "red", "a red square")
	_, _ = svc.Index(ctx, "blue", "a blue circle on a table")

	hits, err := svc.Search(ctx, "a red square", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "red", hits[0].ItemID)

	_, err = svc.Search(ctx, "   ", 5)
	assert.ErrorIs(t, err, pipelineErrors.ErrMissingText)
}

func TestKeyedMutex(t *testing.T) {
	km := NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := km.Lock(ctx, "a")
	require.NoError(t, err)

	// other keys are independent
	unlockB, err := km.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()

	// same key blocks until the context gives up
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = km.Lock(waitCtx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlockA()
	unlockA() // idempotent
	assert.Equal(t, 0, km.size(), "released keys are forgotten")

	unlockA, err = km.Lock(ctx, "a")
	require.NoError(t, err)
	unlockA()
}
