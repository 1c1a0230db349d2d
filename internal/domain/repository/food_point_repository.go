package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type FoodPointRepository interface {
	Upsert(ctx context.Context, point *entity.FoodPoint) error
	List(ctx context.Context) ([]*entity.FoodPoint, error)
}
