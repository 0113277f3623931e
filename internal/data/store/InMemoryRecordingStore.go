package store

import (
	"context"
	"sync"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
)

// InMemoryRecordingStore keeps the newest limit recordings, like the capped redis list.
type InMemoryRecordingStore struct {
	lock       *sync.RWMutex
	recordings map[string]commonModels.Recording
	order      []string
	limit      int
}

func InitInMemoryRecordingStore() *InMemoryRecordingStore {
	return NewInMemoryRecordingStoreWithLimit(config.RecordingHistoryLimit)
}

func NewInMemoryRecordingStoreWithLimit(limit int) *InMemoryRecordingStore {
	return &InMemoryRecordingStore{
		lock:       new(sync.RWMutex),
		recordings: make(map[string]commonModels.Recording),
		limit:      limit,
	}
}

func (store *InMemoryRecordingStore) SaveRecording(ctx context.Context, rec commonModels.Recording) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	if _, ok := store.recordings[rec.Id]; !ok {
		store.order = append(store.order, rec.Id)
	}
	store.recordings[rec.Id] = rec

	if store.limit > 0 && len(store.order) > store.limit {
		drop := len(store.order) - store.limit
		for _, id := range store.order[:drop] {
			delete(store.recordings, id)
		}
		store.order = append([]string(nil), store.order[drop:]...)
	}
	inMemLogger.FromContext(ctx).Debug("Saved recording", "recordingId", rec.Id)
	return nil
}

func (store *InMemoryRecordingStore) GetRecording(ctx context.Context, id string) (commonModels.Recording, bool) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	rec, ok := store.recordings[id]
	return rec, ok
}

func (store *InMemoryRecordingStore) LatestRecording(ctx context.Context) (commonModels.Recording, bool) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	if len(store.order) == 0 {
		return commonModels.Recording{}, false
	}
	return store.recordings[store.order[len(store.order)-1]], true
}
