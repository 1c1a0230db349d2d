package usecase

import (
	"context"
	"time"

	"reliefnet/internal/domain/entity"
)

type AuthProvider interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, cookie string) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
	GetPhoneNumber(ctx context.Context, uid string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SendVerificationCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error)
	VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.PhoneCredential, error)
	TestConnection(ctx context.Context) error
}

type PhotoStore interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type FeedPublisher interface {
	Publish(event entity.FeedEvent)
}

type Limiter interface {
	Allow(key, action string) (bool, time.Duration)
}
