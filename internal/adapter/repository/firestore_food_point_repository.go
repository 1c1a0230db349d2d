package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

const foodPointsCollection = "foodPoints"

type firestoreFoodPointRepository struct {
	client *firestore.Client
}

func NewFirestoreFoodPointRepository(client *firestore.Client) repository.FoodPointRepository {
	return &firestoreFoodPointRepository{
		client: client,
	}
}

func (r *firestoreFoodPointRepository) Upsert(ctx context.Context, point *entity.FoodPoint) error {
	if point.ID == "" {
		point.ID = r.client.Collection(foodPointsCollection).NewDoc().ID
	}

	ref := r.client.Collection(foodPointsCollection).Doc(point.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()
		point.CreatedAt = now
		point.UpdatedAt = now

		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			// The first save fixes createdAt for good
			if created, err := snap.DataAt("createdAt"); err == nil {
				if t, ok := created.(time.Time); ok {
					point.CreatedAt = t
				}
			}
		}

		return tx.Set(ref, point)
	})
	if err != nil {
		logger.LogStoreError(foodPointsCollection, "upsert", point.ID, err)
		return errors.Internal("Failed to save food point", err)
	}

	return nil
}

func (r *firestoreFoodPointRepository) List(ctx context.Context) ([]*entity.FoodPoint, error) {
	docs, err := r.client.Collection(foodPointsCollection).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list food points", err)
	}

	points := make([]*entity.FoodPoint, 0, len(docs))
	for _, doc := range docs {
		var point entity.FoodPoint
		if err := doc.DataTo(&point); err != nil {
			return nil, errors.Internal("Failed to parse food point data", err)
		}
		point.ID = doc.Ref.ID
		points = append(points, &point)
	}

	return points, nil
}
