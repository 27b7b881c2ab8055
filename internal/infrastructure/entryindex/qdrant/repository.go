// Package qdrant provides an EntryIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lexibase/lexi-core/internal/domain/ports"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
)

// pointNamespace seeds deterministic point IDs: the same entry always maps
// to the same point, so reindexing replaces vectors instead of duplicating.
var pointNamespace = uuid.MustParse("8f4a2c1e-7b3d-4e9a-b1c6-2d5f8e0a9c47")

// Repository implements the EntryIndex interface using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// IndexEntries upserts embeddings for the given entries.
func (r *Repository) IndexEntries(ctx context.Context, items []ports.IndexedEntry) error {
	if len(items) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(items))
	for _, item := range items {
		point := &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{
					Uuid: pointID(item.EntryID),
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: item.Embedding,
					},
				},
			},
			Payload: map[string]*pb.Value{
				"entry_id": {Kind: &pb.Value_IntegerValue{IntegerValue: item.EntryID}},
				"text":     {Kind: &pb.Value_StringValue{StringValue: item.Text}},
			},
		}
		points = append(points, point)
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search returns the IDs of the entries closest to the embedding.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]int64, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	ids := make([]int64, 0, len(resp.Result))
	for _, hit := range resp.Result {
		value, ok := hit.Payload["entry_id"]
		if !ok {
			continue
		}
		ids = append(ids, value.GetIntegerValue())
	}
	return ids, nil
}

// DeleteEntry removes an entry's vector from the index.
func (r *Repository) DeleteEntry(ctx context.Context, entryID int64) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{
						{PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(entryID)}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting point: %w", err)
	}
	return nil
}

// pointID derives the stable point UUID for an entry.
func pointID(entryID int64) string {
	return uuid.NewSHA1(pointNamespace, []byte(strconv.FormatInt(entryID, 10))).String()
}
