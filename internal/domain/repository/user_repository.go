package repository

import (
	"context"

	"reliefnet/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	// Upsert creates the profile on first write and merges afterwards.
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}
