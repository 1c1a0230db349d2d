package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type PhoneLoginRepository interface {
	Create(ctx context.Context, login *entity.PhoneLogin) error
	GetByID(ctx context.Context, id string) (*entity.PhoneLogin, error)
	Update(ctx context.Context, login *entity.PhoneLogin) error
}
