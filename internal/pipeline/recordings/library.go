package recordings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

type Action string

const (
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	ActionStop  Action = "stop"
)

const audioURLPrefix = "/audio/"

// Opener hands a file to whatever plays audio on the host.
type Opener func(ctx context.Context, path string) error

type Library struct {
	audioDir string
	baseURL  string
	open     Opener
	logger   *logger_i.Logger
}

func NewLibrary(audioDir string, baseURL string, open Opener) *Library {
	if open == nil {
		open = SystemOpener
	}
	return &Library{
		audioDir: audioDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		open:     open,
		logger:   logger_i.NewLogger("Recordings"),
	}
}

// Latest lists the newest wav files first. limit is clamped to [1, LatestRecordingsMax].
func (l *Library) Latest(limit int) ([]commonModels.RecordingFile, error) {
	if limit <= 0 {
		limit = config.LatestRecordingsDefault
	}
	if limit > config.LatestRecordingsMax {
		limit = config.LatestRecordingsMax
	}

	entries, err := os.ReadDir(l.audioDir)
	if errors.Is(err, os.ErrNotExist) {
		return []commonModels.RecordingFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := make([]commonModels.RecordingFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, commonModels.RecordingFile{
			Name:     e.Name(),
			URL:      l.baseURL + audioURLPrefix + e.Name(),
			Path:     filepath.Join(l.audioDir, e.Name()),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Modified.After(files[j].Modified) })
	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (l *Library) Control(ctx context.Context, action string, audioPath string) (string, error) {
	log := l.logger.FromContext(ctx)

	act := Action(strings.ToLower(strings.TrimSpace(action)))
	switch act {
	case ActionPlay, ActionPause, ActionStop:
	default:
		return "", fmt.Errorf("%w: %q", pipelineErrors.ErrInvalidAudioAction, action)
	}

	path, err := l.resolve(audioPath)
	if err != nil {
		return "", err
	}

	if act != ActionPlay {
		// the server has no playback session to pause or stop
		return fmt.Sprintf("%s acknowledged", act), nil
	}

	if err = l.open(ctx, path); err != nil {
		log.Error("could not start playback", "path", path, "error", err)
		return "", fmt.Errorf("start playback: %w", err)
	}
	log.Info("playback started", "path", path)
	return "Playing audio", nil
}

// resolve accepts a bare file name, a path inside the audio dir, or an /audio/ URL
// path as returned by Latest. The result always lies inside the audio dir.
func (l *Library) resolve(audioPath string) (string, error) {
	audioPath = strings.TrimSpace(audioPath)
	if audioPath == "" {
		return "", fmt.Errorf("%w: audio_path is required", pipelineErrors.ErrInvalidAudioPath)
	}

	root, err := filepath.Abs(l.audioDir)
	if err != nil {
		return "", err
	}

	candidate := l.candidate(root, audioPath)
	if !within(root, candidate) || !isFile(candidate) {
		if i := strings.Index(audioPath, audioURLPrefix); i >= 0 {
			candidate = filepath.Join(root, audioPath[i+len(audioURLPrefix):])
		}
	}

	if !within(root, candidate) {
		return "", fmt.Errorf("%w: %q", pipelineErrors.ErrInvalidAudioPath, audioPath)
	}
	if !isFile(candidate) {
		return "", fmt.Errorf("%w: %q", pipelineErrors.ErrAudioNotFound, audioPath)
	}
	return candidate, nil
}

func (l *Library) candidate(root string, audioPath string) string {
	if filepath.IsAbs(audioPath) {
		return filepath.Clean(audioPath)
	}
	if rel, err := filepath.Rel(l.audioDir, audioPath); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join(root, rel)
	}
	return filepath.Join(root, audioPath)
}

func within(root string, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func SystemOpener(_ context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	_, err := startDetached(cmd)
	return err
}

// startDetached starts cmd without tying it to a request and reaps it when it
// exits. The returned channel closes once the process has been waited on.
func startDetached(cmd *exec.Cmd) (<-chan struct{}, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	reaped := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(reaped)
	}()
	return reaped, nil
}
