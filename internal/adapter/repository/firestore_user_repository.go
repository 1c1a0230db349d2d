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

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User profile", err)
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}

	var profile entity.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse user profile data", err)
	}
	profile.ID = doc.Ref.ID

	return &profile, nil
}

func (r *firestoreUserRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	ref := r.client.Collection(usersCollection).Doc(profile.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()
		updateData := map[string]interface{}{
			"id":        profile.ID,
			"updatedAt": now,
		}
		// Empty values never overwrite what is already stored
		if profile.DisplayName != "" {
			updateData["displayName"] = profile.DisplayName
		}
		if profile.PhoneNumber != "" {
			updateData["phoneNumber"] = profile.PhoneNumber
		}

		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
			updateData["createdAt"] = now
			if profile.Role == "" {
				profile.Role = entity.RoleUser
			}
			updateData["role"] = profile.Role
			profile.CreatedAt = now
		case err != nil:
			return err
		default:
			if created, err := snap.DataAt("createdAt"); err == nil {
				if t, ok := created.(time.Time); ok {
					profile.CreatedAt = t
				}
			}
		}
		profile.UpdatedAt = now

		return tx.Set(ref, updateData, firestore.MergeAll)
	})
	if err != nil {
		logger.LogStoreError(usersCollection, "upsert", profile.ID, err)
		return errors.Internal("Failed to save user profile", err)
	}

	return nil
}
