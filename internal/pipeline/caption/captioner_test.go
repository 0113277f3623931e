package caption

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockModel struct {
	OnCaption func(ctx context.Context, req Request) (string, error)
	calls     []Request
}

func (m *mockModel) Caption(ctx context.Context, req Request) (string, error) {
	m.calls = append(m.calls, req)
	if m.OnCaption != nil {
		return m.OnCaption(ctx, req)
	}
	return "a red square", nil
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p := filepath.Join(dir, "red.png")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0600))
	return p
}

func TestDescribe_Budgets(t *testing.T) {
	path := writePNG(t, t.TempDir())

	tests := []struct {
		mode       commonModels.DescriptionMode
		wantBudget int32
		wantMode   commonModels.DescriptionMode
	}{
		{commonModels.ModeSummary, config.SummaryCaptionBudget, commonModels.ModeSummary},
		{commonModels.ModeDetailed, config.DetailedCaptionBudget, commonModels.ModeDetailed},
		{"", config.SummaryCaptionBudget, commonModels.ModeSummary},
	}
	for _, tt := range tests {
		t.Run(string(tt.wantMode), func(t *testing.T) {
			m := &mockModel{}
			svc := New(m)
			desc, err := svc.Describe(context.Background(), path, tt.mode, "en")
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.wantBudget, m.calls[0].MaxTokens)
			assert.Equal(t, "image/png", m.calls[0].MIMEType)
			assert.Equal(t, tt.wantMode, desc.Mode)
			assert.Equal(t, "a red square", desc.Text)
		})
	}
}

func TestDescribe_InvalidImage(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(p, []byte("definitely not a png"), 0600))

	m := &mockModel{}
	_, err := New(m).Describe(context.Background(), p, commonModels.ModeSummary, "en")
	assert.True(t, errors.Is(err, pipelineErrors.ErrInvalidImageFormat))
	assert.Empty(t, m.calls, "model must not be called for undecodable input")
}

func TestDescribe_InvalidMode(t *testing.T) {
	path := writePNG(t, t.TempDir())
	m := &mockModel{}
	_, err := New(m).Describe(context.Background(), path, "poetic", "en")
	assert.True(t, errors.Is(err, pipelineErrors.ErrInvalidDescriptionMode))
	assert.Empty(t, m.calls)
}

func TestDescribe_ModelFailures(t *testing.T) {
	path := writePNG(t, t.TempDir())

	t.Run("error", func(t *testing.T) {
		m := &mockModel{OnCaption: func(ctx context.Context, req Request) (string, error) {
			return "", errors.New("quota")
		}}
		_, err := New(m).Describe(context.Background(), path, commonModels.ModeSummary, "en")
		assert.True(t, errors.Is(err, pipelineErrors.ErrDownstreamUnavailable))
	})

	t.Run("empty output", func(t *testing.T) {
		m := &mockModel{OnCaption: func(ctx context.Context, req Request) (string, error) {
			return "   \n ", nil
		}}
		_, err := New(m).Describe(context.Background(), path, commonModels.ModeSummary, "en")
		assert.True(t, errors.Is(err, pipelineErrors.ErrDownstreamUnavailable))
	})

	t.Run("deadline keeps its identity", func(t *testing.T) {
		m := &mockModel{OnCaption: func(ctx context.Context, req Request) (string, error) {
			return "", context.DeadlineExceeded
		}}
		_, err := New(m).Describe(context.Background(), path, commonModels.ModeSummary, "en")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Equal(t, pipelineErrors.KindTimeout, pipelineErrors.KindOf(err))
	})
}

func TestPrompt_LanguageHint(t *testing.T) {
	assert.Equal(t, config.CaptionPrompt, prompt(commonModels.ModeSummary, "en"))
	assert.Contains(t, prompt(commonModels.ModeDetailed, "fr"), "fr")
}
