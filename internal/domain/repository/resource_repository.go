package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	GetByID(ctx context.Context, id string) (*entity.Resource, error)
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Resource, error)
}
