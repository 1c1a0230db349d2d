package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "relief-test")
	t.Setenv("FIREBASE_PRIVATE_KEY", `-----BEGIN-----\nabc\n-----END-----`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 5*24*time.Hour, cfg.SessionExpiry)
	assert.Equal(t, "+34", cfg.PhoneCountryCode)
	assert.Equal(t, "-----BEGIN-----\nabc\n-----END-----", cfg.FirebasePrivateKey)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresProject(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsSessionExpiryOutOfRange(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "relief-test")
	t.Setenv("SESSION_EXPIRY_HOURS", "400")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "relief-test")
	t.Setenv("ALLOWED_ORIGINS", "https://ayuda.example.org, https://admin.example.org ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://ayuda.example.org", "https://admin.example.org"}, cfg.AllowedOrigins)
}

func TestCredentialsOption(t *testing.T) {
	cfg := &Config{FirebaseProject: "relief-test"}
	_, err := cfg.CredentialsOption()
	assert.Error(t, err)

	cfg.FirebaseClientEmail = "svc@relief-test.iam.gserviceaccount.com"
	cfg.FirebasePrivateKey = "key"
	opt, err := cfg.CredentialsOption()
	require.NoError(t, err)
	assert.NotNil(t, opt)

	cfg.ServiceAccountPath = "/does/not/exist.json"
	cfg.FirebaseClientEmail = ""
	_, err = cfg.CredentialsOption()
	assert.Error(t, err)
}
