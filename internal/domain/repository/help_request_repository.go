package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type HelpRequestRepository interface {
	Create(ctx context.Context, request *entity.HelpRequest) error
	GetByID(ctx context.Context, id string) (*entity.HelpRequest, error)
	Update(ctx context.Context, request *entity.HelpRequest) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.HelpRequest, error)
	AddPhoto(ctx context.Context, id, url string) error
}
