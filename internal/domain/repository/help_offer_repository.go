package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type HelpOfferRepository interface {
	Create(ctx context.Context, offer *entity.HelpOffer) error
	GetByID(ctx context.Context, id string) (*entity.HelpOffer, error)
	Update(ctx context.Context, offer *entity.HelpOffer) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.HelpOffer, error)
}
