package usecase

import (
	"context"
	"time"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

type SessionUseCase struct {
	auth     AuthProvider
	userRepo repository.UserRepository
	expiry   time.Duration
}

func NewSessionUseCase(auth AuthProvider, userRepo repository.UserRepository, expiry time.Duration) *SessionUseCase {
	return &SessionUseCase{
		auth:     auth,
		userRepo: userRepo,
		expiry:   expiry,
	}
}

type SessionInfo struct {
	UID         string              `json:"uid"`
	PhoneNumber string              `json:"phone_number"`
	Profile     *entity.UserProfile `json:"profile"`
}

func (uc *SessionUseCase) Expiry() time.Duration {
	return uc.expiry
}

// CreateSession exchanges an identity token for a session cookie value.
func (uc *SessionUseCase) CreateSession(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", errors.BadRequest("ID token is required", nil).WithMessageID("missing_id_token")
	}

	cookie, err := uc.auth.CreateSessionCookie(ctx, idToken, uc.expiry)
	if err != nil {
		logger.Warn("session cookie rejected: %v", err)
		return "", errors.Unauthorized("Invalid ID token", err).WithMessageID("invalid_token")
	}

	return cookie, nil
}

// VerifySession returns the uid behind a session cookie.
func (uc *SessionUseCase) VerifySession(ctx context.Context, cookie string) (string, error) {
	uid, err := uc.auth.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired session", err)
	}
	return uid, nil
}

// VerifyIDToken is the bearer-token fallback for API clients.
func (uc *SessionUseCase) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	uid, err := uc.auth.VerifyToken(ctx, idToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err).WithMessageID("invalid_token")
	}
	return uid, nil
}

// Current describes the signed-in user. Profile is nil until the login flow's
// profile step is done.
func (uc *SessionUseCase) Current(ctx context.Context, uid string) (*SessionInfo, error) {
	phone, err := uc.auth.GetPhoneNumber(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to get user", err)
	}

	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		profile = nil
	}

	return &SessionInfo{
		UID:         uid,
		PhoneNumber: phone,
		Profile:     profile,
	}, nil
}

// SignOut revokes every session the user holds.
func (uc *SessionUseCase) SignOut(ctx context.Context, uid string) error {
	if err := uc.auth.RevokeSessions(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke sessions", err)
	}
	logger.Info("sessions revoked for %s", uid)
	return nil
}

// DevToken mints a custom token for uid. Only wired in development.
func (uc *SessionUseCase) DevToken(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", errors.BadRequest("uid is required", nil)
	}

	token, err := uc.auth.GenerateToken(ctx, uid)
	if err != nil {
		return "", errors.Internal("Failed to generate token", err)
	}
	return token, nil
}
