package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reliefnet/internal/domain/entity"
)

func TestCreateSession(t *testing.T) {
	auth := &mockAuth{}
	uc := NewSessionUseCase(auth, newMemUserRepo(), sessionExpiry)

	_, err := uc.CreateSession(context.Background(), "")
	requireAppError(t, err, "BAD_REQUEST", "missing_id_token")

	auth.On("CreateSessionCookie", mock.Anything, "stale", sessionExpiry).Return("", stderrors.New("ID token issued too long ago"))
	_, err = uc.CreateSession(context.Background(), "stale")
	requireAppError(t, err, "UNAUTHORIZED", "invalid_token")

	auth.On("CreateSessionCookie", mock.Anything, "fresh", sessionExpiry).Return("cookie-value", nil)
	cookie, err := uc.CreateSession(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "cookie-value", cookie)
}

func TestVerifySessionAndToken(t *testing.T) {
	auth := &mockAuth{}
	uc := NewSessionUseCase(auth, newMemUserRepo(), sessionExpiry)

	auth.On("VerifySessionCookie", mock.Anything, "good").Return("uid-1", nil)
	auth.On("VerifySessionCookie", mock.Anything, "revoked").Return("", stderrors.New("session cookie has been revoked"))
	auth.On("VerifyToken", mock.Anything, "bearer").Return("uid-2", nil)

	uid, err := uc.VerifySession(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	_, err = uc.VerifySession(context.Background(), "revoked")
	requireAppError(t, err, "UNAUTHORIZED", "unauthorized")

	uid, err = uc.VerifyIDToken(context.Background(), "bearer")
	require.NoError(t, err)
	assert.Equal(t, "uid-2", uid)
}

func TestCurrentSession(t *testing.T) {
	auth := &mockAuth{}
	users := newMemUserRepo(&entity.UserProfile{ID: "uid-1", DisplayName: "Ana", Role: entity.RoleUser})
	uc := NewSessionUseCase(auth, users, sessionExpiry)

	auth.On("GetPhoneNumber", mock.Anything, "uid-1").Return("+34612345678", nil)
	auth.On("GetPhoneNumber", mock.Anything, "uid-2").Return("+34698765432", nil)

	info, err := uc.Current(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "+34612345678", info.PhoneNumber)
	require.NotNil(t, info.Profile)
	assert.Equal(t, "Ana", info.Profile.DisplayName)

	info, err = uc.Current(context.Background(), "uid-2")
	require.NoError(t, err)
	assert.Nil(t, info.Profile)
}

func TestSignOutAndDevToken(t *testing.T) {
	auth := &mockAuth{}
	uc := NewSessionUseCase(auth, newMemUserRepo(), sessionExpiry)

	auth.On("RevokeSessions", mock.Anything, "uid-1").Return(nil)
	require.NoError(t, uc.SignOut(context.Background(), "uid-1"))

	auth.On("RevokeSessions", mock.Anything, "uid-2").Return(stderrors.New("user not found"))
	requireAppError(t, uc.SignOut(context.Background(), "uid-2"), "INTERNAL_ERROR", "")

	_, err := uc.DevToken(context.Background(), "")
	requireAppError(t, err, "BAD_REQUEST", "")

	auth.On("GenerateToken", mock.Anything, "uid-1").Return("custom-token", nil)
	token, err := uc.DevToken(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "custom-token", token)
}

func TestUpdateProfile(t *testing.T) {
	auth := &mockAuth{}
	users := newMemUserRepo(&entity.UserProfile{ID: "coord", DisplayName: "Coordinadora", Role: entity.RoleCoordinator})
	uc := NewUserUseCase(users, auth)

	_, err := uc.UpdateProfile(context.Background(), "uid-1", " ab ")
	requireAppError(t, err, "BAD_REQUEST", "name_too_short")

	auth.On("GetPhoneNumber", mock.Anything, "uid-1").Return("+34612345678", nil)
	profile, err := uc.UpdateProfile(context.Background(), "uid-1", "Juan Pérez")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", profile.DisplayName)
	assert.Equal(t, "+34612345678", profile.PhoneNumber)
	assert.Equal(t, entity.RoleUser, profile.Role)

	// A rename keeps the stored role
	auth.On("GetPhoneNumber", mock.Anything, "coord").Return("+34600000000", nil)
	profile, err = uc.UpdateProfile(context.Background(), "coord", "Coordinación Paiporta")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCoordinator, profile.Role)

	_, err = uc.GetProfile(context.Background(), "nobody")
	requireAppError(t, err, "NOT_FOUND", "not_found")
}
