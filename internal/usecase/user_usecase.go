package usecase

import (
	"context"
	"strings"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	auth     AuthProvider
}

func NewUserUseCase(userRepo repository.UserRepository, auth AuthProvider) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		auth:     auth,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// UpdateProfile creates the profile on first use. The phone number always
// comes from the identity provider, never from the client.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid, displayName string) (*entity.UserProfile, error) {
	displayName = strings.TrimSpace(displayName)
	if len([]rune(displayName)) < entity.MinDisplayNameLength {
		return nil, errors.BadRequest("Please enter your full name", nil).WithMessageID("name_too_short")
	}

	phone, err := uc.auth.GetPhoneNumber(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to get user", err)
	}

	profile := &entity.UserProfile{
		ID:          uid,
		DisplayName: displayName,
		PhoneNumber: phone,
	}
	if err := uc.userRepo.Upsert(ctx, profile); err != nil {
		return nil, errors.Internal("Failed to save profile", err).WithMessageID("profile_save_failed")
	}

	return uc.userRepo.GetByID(ctx, uid)
}
