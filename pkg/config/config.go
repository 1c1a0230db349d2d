package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	FirebaseApiKey  string

	ServiceAccountJSON  string
	ServiceAccountPath  string
	FirebaseClientEmail string
	FirebasePrivateKey  string

	StorageBucket string

	SessionCookieName string
	SessionExpiry     time.Duration
	PhoneCountryCode  string
	LoginFlowTTL      time.Duration
	MaxCodeAttempts   int

	AllowedOrigins []string
	SentryDSN      string
	Timezone       string
	FoodPointsFile string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  getEnv("FIREBASE_API_KEY", ""),

		ServiceAccountJSON:  getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath:  getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		FirebaseClientEmail: getEnv("FIREBASE_CLIENT_EMAIL", ""),
		// Private keys pasted into env files usually carry escaped newlines
		FirebasePrivateKey: strings.ReplaceAll(getEnv("FIREBASE_PRIVATE_KEY", ""), `\n`, "\n"),

		StorageBucket: getEnv("STORAGE_BUCKET", ""),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		SessionExpiry:     time.Duration(getEnvAsInt64("SESSION_EXPIRY_HOURS", 5*24)) * time.Hour,
		PhoneCountryCode:  getEnv("PHONE_COUNTRY_CODE", "+34"),
		LoginFlowTTL:      time.Duration(getEnvAsInt64("LOGIN_FLOW_TTL_MINUTES", 15)) * time.Minute,
		MaxCodeAttempts:   int(getEnvAsInt64("MAX_CODE_ATTEMPTS", 5)),

		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		Timezone:       getEnv("TIMEZONE", "Europe/Madrid"),
		FoodPointsFile: getEnv("FOOD_POINTS_FILE", ""),
	}

	if config.FirebaseProject == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	// Firebase only accepts session cookies between 5 minutes and 2 weeks
	if config.SessionExpiry < 5*time.Minute || config.SessionExpiry > 14*24*time.Hour {
		return nil, fmt.Errorf("SESSION_EXPIRY_HOURS out of range: %v", config.SessionExpiry)
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CredentialsOption picks the service account source: inline JSON, the
// client email/private key pair, then a key file on disk.
func (c *Config) CredentialsOption() (option.ClientOption, error) {
	if c.ServiceAccountJSON != "" {
		return option.WithCredentialsJSON([]byte(c.ServiceAccountJSON)), nil
	}

	if c.FirebaseClientEmail != "" && c.FirebasePrivateKey != "" {
		raw, err := json.Marshal(map[string]string{
			"type":         "service_account",
			"project_id":   c.FirebaseProject,
			"client_email": c.FirebaseClientEmail,
			"private_key":  c.FirebasePrivateKey,
			"token_uri":    "https://oauth2.googleapis.com/token",
		})
		if err != nil {
			return nil, err
		}
		return option.WithCredentialsJSON(raw), nil
	}

	if c.ServiceAccountPath != "" {
		if _, err := os.Stat(c.ServiceAccountPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account file does not exist: %s", c.ServiceAccountPath)
		}
		return option.WithCredentialsFile(c.ServiceAccountPath), nil
	}

	return nil, fmt.Errorf("no Firebase credentials configured")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
