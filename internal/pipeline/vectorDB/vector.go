package vectorDB

import (
	"context"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
)

// Index is the opaque vector store. Lookup reports found=false for a missing id.
type Index interface {
	Lookup(ctx context.Context, itemID string) (commonModels.IndexEntry, bool, error)
	Insert(ctx context.Context, entry commonModels.IndexEntry) error
	Search(ctx context.Context, vector []float32, limit int) ([]commonModels.SearchHit, error)
}
