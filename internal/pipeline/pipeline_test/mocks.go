package pipeline_test

import (
	"context"
	"sync/atomic"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
)

// MockCaptionModel implements caption.Model
type MockCaptionModel struct {
	OnCaption func(ctx context.Context, req caption.Request) (string, error)
	LastReq   caption.Request
}

func (m *MockCaptionModel) Caption(ctx context.Context, req caption.Request) (string, error) {
	m.LastReq = req
	if m.OnCaption != nil {
		return m.OnCaption(ctx, req)
	}
	return "a plain red square", nil
}

// MockEmbedder returns a small deterministic vector derived from the text.
type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	v := make([]float32, 16)
	for i, r := range text {
		v[i%len(v)] += float32(r % 7)
	}
	return v, nil
}

// MockEngine implements speech.Engine
type MockEngine struct {
	OnSynthesize func(ctx context.Context, text, speaker, language string) (speech.PCM, error)
	Calls        int32
}

func (m *MockEngine) Synthesize(ctx context.Context, text, speaker, language string) (speech.PCM, error) {
	atomic.AddInt32(&m.Calls, 1)
	if m.OnSynthesize != nil {
		return m.OnSynthesize(ctx, text, speaker, language)
	}
	samples := make([]int, 2400)
	for i := range samples {
		samples[i] = (i%48 - 24) * 1000
	}
	return speech.PCM{Samples: samples, SampleRate: 24000, BitDepth: 16}, nil
}

// MockScratch implements pipeline.ScratchCleaner
type MockScratch struct {
	OnRemove func(asset commonModels.UploadedAsset) error
	Removed  []string
}

func (m *MockScratch) Remove(asset commonModels.UploadedAsset) error {
	if m.OnRemove != nil {
		return m.OnRemove(asset)
	}
	m.Removed = append(m.Removed, asset.Path)
	return nil
}
