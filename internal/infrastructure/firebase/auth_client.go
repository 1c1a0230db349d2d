package firebase

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"reliefnet/internal/domain/entity"
)

type FirebaseAuthClient struct {
	client  *auth.Client
	toolkit *identitytoolkit.Service
}

// NewFirebaseAuthClient wraps the admin auth client. The Identity Toolkit
// service handles the SMS side of phone sign-in and needs the web API key.
func NewFirebaseAuthClient(ctx context.Context, client *auth.Client, apiKey string) (*FirebaseAuthClient, error) {
	f := &FirebaseAuthClient{
		client: client,
	}

	if apiKey != "" {
		toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
		}
		f.toolkit = toolkit
	}

	return f, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// CreateSessionCookie exchanges a fresh ID token for a session cookie.
func (f *FirebaseAuthClient) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return f.client.SessionCookie(ctx, idToken, expiresIn)
}

// VerifySessionCookie also rejects cookies whose sessions were revoked.
func (f *FirebaseAuthClient) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	token, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return "", err
	}

	return token.UID, nil
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func (f *FirebaseAuthClient) GetPhoneNumber(ctx context.Context, uid string) (string, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}

	return user.PhoneNumber, nil
}

func (f *FirebaseAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return f.client.CustomToken(ctx, uid)
}

// SendVerificationCode asks Firebase to text a code to phoneNumber (E.164).
// The returned session info identifies the pending verification.
func (f *FirebaseAuthClient) SendVerificationCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	if f.toolkit == nil {
		return "", fmt.Errorf("phone sign-in requires FIREBASE_API_KEY")
	}

	resp, err := f.toolkit.Relyingparty.SendVerificationCode(&identitytoolkit.IdentitytoolkitRelyingpartySendVerificationCodeRequest{
		PhoneNumber:    phoneNumber,
		RecaptchaToken: recaptchaToken,
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	return resp.SessionInfo, nil
}

// VerifyPhoneCode confirms the SMS code and returns an ID token for the user.
func (f *FirebaseAuthClient) VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.PhoneCredential, error) {
	if f.toolkit == nil {
		return nil, fmt.Errorf("phone sign-in requires FIREBASE_API_KEY")
	}

	resp, err := f.toolkit.Relyingparty.VerifyPhoneNumber(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPhoneNumberRequest{
		SessionInfo: sessionInfo,
		Code:        code,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &entity.PhoneCredential{
		UID:         resp.LocalId,
		IDToken:     resp.IdToken,
		PhoneNumber: resp.PhoneNumber,
		IsNewUser:   resp.IsNewUser,
	}, nil
}

// TestConnection makes a cheap authenticated admin call.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	iter := f.client.Users(ctx, "")
	_, err := iter.Next()
	if err != nil && err != iterator.Done {
		return err
	}
	return nil
}
