package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var logger = logger_i.NewLogger("Upload")

type Store struct {
	scratchDir string
}

func NewStore(scratchDir string) (*Store, error) {
	if err := os.MkdirAll(scratchDir, 0750); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Store{scratchDir: scratchDir}, nil
}

func (s *Store) Dir() string {
	return s.scratchDir
}

// Save checks the declared content type before anything touches the disk,
// then writes the body to <scratch>/<uuid>_<name>.
func (s *Store) Save(filename string, contentType string, body io.Reader) (commonModels.UploadedAsset, error) {
	if !IsImage(contentType) {
		return commonModels.UploadedAsset{}, fmt.Errorf("%w: %q", pipelineErrors.ErrInvalidFileType, contentType)
	}

	original := BaseName(filename)
	if original == "" {
		return commonModels.UploadedAsset{}, pipelineErrors.ErrMissingFile
	}

	stored := utils.GetNewUUID() + "_" + original
	dest := filepath.Join(s.scratchDir, stored)

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)
	if err != nil {
		return commonModels.UploadedAsset{}, fmt.Errorf("create scratch file: %w", err)
	}

	if _, err = io.Copy(out, body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return commonModels.UploadedAsset{}, fmt.Errorf("write scratch file: %w", err)
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(dest)
		return commonModels.UploadedAsset{}, fmt.Errorf("close scratch file: %w", err)
	}

	logger.Debug("stored upload", "file", stored)
	return commonModels.UploadedAsset{
		StoredName:   stored,
		OriginalName: original,
		ContentType:  contentType,
		Path:         dest,
		ItemID:       ItemID(original),
	}, nil
}

// Remove deletes a scratch file. A file that is already gone is not an error.
func (s *Store) Remove(asset commonModels.UploadedAsset) error {
	err := os.Remove(asset.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// BaseName strips any client supplied directories, both slash styles.
func BaseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// ItemID is the filename without its last extension. Dotfiles keep their name.
func ItemID(filename string) string {
	ext := filepath.Ext(filename)
	id := strings.TrimSuffix(filename, ext)
	if id == "" {
		return filename
	}
	return id
}
