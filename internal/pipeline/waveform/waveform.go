package waveform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Renderer struct {
	plotDir    string
	recordings jobModel.RecordingStore
	mu         sync.Mutex
	logger     *logger_i.Logger
}

func NewRenderer(plotDir string, recordings jobModel.RecordingStore) (*Renderer, error) {
	if err := os.MkdirAll(plotDir, 0750); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}
	return &Renderer{plotDir: plotDir, recordings: recordings, logger: logger_i.NewLogger("Waveform")}, nil
}

// RenderFor draws the recording with the given id, or the latest one when id is empty.
func (r *Renderer) RenderFor(ctx context.Context, recordingID string) (string, error) {
	var rec commonModels.Recording
	var found bool
	if recordingID == "" {
		rec, found = r.recordings.LatestRecording(ctx)
	} else {
		rec, found = r.recordings.GetRecording(ctx, recordingID)
	}
	if !found {
		return "", pipelineErrors.ErrNoAudio
	}
	return r.Render(ctx, rec)
}

func (r *Renderer) Render(ctx context.Context, rec commonModels.Recording) (string, error) {
	log := r.logger.FromContext(ctx).With("recordingId", rec.Id)

	r.mu.Lock()
	defer r.mu.Unlock()

	pcm, err := speech.ReadWAVFile(rec.AudioPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("recording audio is gone", "path", rec.AudioPath)
		return "", pipelineErrors.ErrNoAudio
	}
	if err != nil {
		return "", fmt.Errorf("read recording: %w", err)
	}
	if pcm.Empty() {
		return "", pipelineErrors.ErrNoAudio
	}

	p := plot.New()
	p.Title.Text = TitlePreview(rec.Text)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"

	line, err := plotter.NewLine(points(pcm, config.WaveformMaxPoints))
	if err != nil {
		return "", fmt.Errorf("build waveform line: %w", err)
	}
	p.Add(line)

	out := filepath.Join(r.plotDir, rec.Id+".png")
	if err = p.Save(config.WaveformWidthInch*vg.Inch, config.WaveformHeightInch*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save waveform: %w", err)
	}
	log.Debug("waveform rendered", "file", out)
	return out, nil
}

// TitlePreview keeps at most WaveformTitleLimit characters and marks the cut.
func TitlePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= config.WaveformTitleLimit {
		return text
	}
	return string(runes[:config.WaveformTitleLimit]) + "..."
}

// points keeps the loudest sample per bucket so long clips stay readable.
func points(pcm speech.PCM, max int) plotter.XYs {
	n := len(pcm.Samples)
	step := 1
	if max > 0 && n > max {
		step = (n + max - 1) / max
	}
	pts := make(plotter.XYs, 0, n/step+1)
	rate := float64(pcm.SampleRate)
	for i := 0; i < n; i += step {
		end := i + step
		if end > n {
			end = n
		}
		peak := pcm.Samples[i]
		for _, s := range pcm.Samples[i:end] {
			if abs(s) > abs(peak) {
				peak = s
			}
		}
		pts = append(pts, plotter.XY{X: float64(i) / rate, Y: float64(peak)})
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
