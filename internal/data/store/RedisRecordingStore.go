package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/data/redisStore"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

const (
	recordingKeyPrefix = "recording:"
	latestRecordingKey = "recordings:latest"
)

type RedisRecordingStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisRecordingStore(ctx context.Context, opts redisStore.Options) *RedisRecordingStore {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisRecordingStore)
	if s == nil {
		return nil
	}
	return NewRedisRecordingStore(s)
}

func NewRedisRecordingStore(s *redisStore.Store) *RedisRecordingStore {
	return &RedisRecordingStore{store: s, logger: logger_i.NewLogger("RecordingStore")}
}

func (s *RedisRecordingStore) SaveRecording(ctx context.Context, rec commonModels.Recording) error {
	log := s.logger.FromContext(ctx).With("recordingId", rec.Id)
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err = s.store.Set(ctx, recordingKeyPrefix+rec.Id, data, config.RedisRecordingStoreTTL); err != nil {
		log.Error("error saving recording", "error", err)
		return err
	}
	if err = s.store.ListPushFrontCapped(ctx, latestRecordingKey, rec.Id, config.RecordingHistoryLimit, config.RedisRecordingStoreTTL); err != nil {
		log.Error("error updating latest recordings", "error", err)
		return err
	}
	log.Debug("Saved recording")
	return nil
}

func (s *RedisRecordingStore) GetRecording(ctx context.Context, id string) (commonModels.Recording, bool) {
	var rec commonModels.Recording
	val, err := s.store.Get(ctx, recordingKeyPrefix+id)
	if err != nil {
		if !s.store.IsNil(err) {
			s.logger.FromContext(ctx).Error("error reading recording", "recordingId", id, "error", err)
		}
		return rec, false
	}
	if err = json.Unmarshal([]byte(val), &rec); err != nil {
		return rec, false
	}
	return rec, true
}

// LatestRecording walks the history newest first and skips ids whose record expired.
func (s *RedisRecordingStore) LatestRecording(ctx context.Context) (commonModels.Recording, bool) {
	ids, err := s.store.ListRange(ctx, latestRecordingKey, 0, config.RecordingHistoryLimit-1)
	if err != nil {
		s.logger.FromContext(ctx).Error("error reading recording history", "error", err)
		return commonModels.Recording{}, false
	}
	for _, id := range ids {
		if rec, ok := s.GetRecording(ctx, id); ok {
			return rec, true
		}
	}
	return commonModels.Recording{}, false
}
