package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/commonModels"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger = logger_i.NewLogger("Qdrant")
var dimension = uint64(config.EmbeddingOutputDimensionality)

// item ids are free text, qdrant wants uuids or integers
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("captionspeech/items"))

const (
	payloadItemID      = "item_id"
	payloadDescription = "description"
)

type ClientHolder struct {
	QObj           *qdrant.Client
	collectionName string
}

func NewQdrantIndex(ctx context.Context, host string, port int, collectionName string) (*ClientHolder, error) {
	if port == 0 {
		port = config.QdrantGrpcPort
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:          host,
		Port:          port,
		UseTLS:        config.QdrantUseTLS,
		PoolSize:      uint(config.QdrantPoolSize),
		KeepAliveTime: int(config.QdrantKeepAliveTimeout.Seconds()),
	})
	if err != nil {
		logger.Error("could not instantiate", "error", err)
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	if err = createCollection(initCtx, client, collectionName); err != nil {
		logger.Error("could not create collection", "collectionName", collectionName, "error", err)
		_ = client.Close()
		return nil, err
	}

	go closeQdrant(ctx, client)
	logger.Info("Qdrant ready", "collection", collectionName)
	return &ClientHolder{QObj: client, collectionName: collectionName}, nil
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
}

func PointID(itemID string) string {
	return uuid.NewSHA1(itemNamespace, []byte(itemID)).String()
}

func (db *ClientHolder) Lookup(ctx context.Context, itemID string) (commonModels.IndexEntry, bool, error) {
	points, err := db.QObj.Get(ctx, &qdrant.GetPoints{
		CollectionName: db.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(PointID(itemID))},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return commonModels.IndexEntry{}, false, err
	}
	if len(points) == 0 {
		return commonModels.IndexEntry{}, false, nil
	}
	return toEntry(points[0].GetPayload()), true, nil
}

func (db *ClientHolder) Insert(ctx context.Context, entry commonModels.IndexEntry) error {
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(PointID(entry.ItemID)),
				Vectors: qdrant.NewVectors(entry.Vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					payloadItemID:      entry.ItemID,
					payloadDescription: entry.Description,
				}),
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.SearchHit, error) {
	log := logger.FromContext(ctx)
	if limit <= 0 {
		limit = config.SearchResultLimit
	}
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	hits := make([]commonModels.SearchHit, 0, len(result))
	for _, point := range result {
		e := toEntry(point.GetPayload())
		hits = append(hits, commonModels.SearchHit{ItemID: e.ItemID, Description: e.Description, Score: point.GetScore()})
	}
	log.Debug("Found matches", "count", len(hits))
	return hits, nil
}

func toEntry(payload map[string]*qdrant.Value) commonModels.IndexEntry {
	return commonModels.IndexEntry{
		ItemID:      payload[payloadItemID].GetStringValue(),
		Description: payload[payloadDescription].GetStringValue(),
	}
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
