package vectorDB

import (
	"context"
	"sort"
	"sync"

	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/embedding"
)

// InMemoryIndex is the fallback when qdrant is offline, and the test double.
type InMemoryIndex struct {
	mu      sync.RWMutex
	entries map[string]commonModels.IndexEntry
	order   []string
}

func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{entries: make(map[string]commonModels.IndexEntry)}
}

func (idx *InMemoryIndex) Lookup(ctx context.Context, itemID string) (commonModels.IndexEntry, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.entries[itemID]
	return e, ok, nil
}

// Insert keeps the last write for an id, same as a qdrant upsert. Callers guard write-once.
func (idx *InMemoryIndex) Insert(ctx context.Context, entry commonModels.IndexEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.entries[entry.ItemID]; !ok {
		idx.order = append(idx.order, entry.ItemID)
	}
	v := make([]float32, len(entry.Vector))
	copy(v, entry.Vector)
	entry.Vector = v
	idx.entries[entry.ItemID] = entry
	return nil
}

func (idx *InMemoryIndex) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.SearchHit, error) {
	idx.mu.RLock()
	hits := make([]commonModels.SearchHit, 0, len(idx.entries))
	for _, id := range idx.order {
		e := idx.entries[id]
		hits = append(hits, commonModels.SearchHit{
			ItemID:      e.ItemID,
			Description: e.Description,
			Score:       embedding.Cosine(vector, e.Vector),
		})
	}
	idx.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (idx *InMemoryIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}
