package usecase

import (
	"context"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
)

// authorizeChange lets the record's creator or any coordinator modify it.
func authorizeChange(ctx context.Context, userRepo repository.UserRepository, uid, ownerID string) error {
	if uid != "" && uid == ownerID {
		return nil
	}

	profile, err := userRepo.GetByID(ctx, uid)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return err
	}
	if profile.IsCoordinator() {
		return nil
	}

	return errors.Forbidden("Only the creator or a coordinator can change this record", nil)
}

// noopPublisher is used when no live feed is wired.
type noopPublisher struct{}

func (noopPublisher) Publish(_ entity.FeedEvent) {}
