package config

import (
	"fmt"
	"os"
	"strconv"
)

// Database configuration struct.
type DatabaseConfiguration struct {
	URL string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Steam Web API configuration struct.
type SteamConfiguration struct {
	BaseURL string
	ApiKey  string
}

// OpenDota API configuration struct.
type OpenDotaConfiguration struct {
	BaseURL string
}

// Bucket configuration for the log upload.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Sync configuration struct.
type SyncConfiguration struct {
	LeagueId int
}

var (
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Steam    SteamConfiguration
	OpenDota OpenDotaConfiguration
	Bucket   BucketConfiguration
	Sync     SyncConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the database configuration.
	Database.URL = os.Getenv("DATABASE_URL")

	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the Steam configuration.
	Steam.BaseURL = getEnvDefault("STEAM_API_BASE_URL", "http://api.steampowered.com")
	Steam.ApiKey = os.Getenv("STEAM_API_KEY")

	// Load the OpenDota configuration.
	OpenDota.BaseURL = getEnvDefault("OPENDOTA_API_BASE_URL", "https://api.opendota.com/api")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_BUCKET")

	// Load the sync configuration.
	Sync.LeagueId, _ = strconv.Atoi(os.Getenv("LEAGUE_ID"))
}

// Validate verifies that the required variables are present.
func Validate() error {
	if Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}

	if Steam.ApiKey == "" {
		return fmt.Errorf("STEAM_API_KEY must be set")
	}

	return nil
}

// Get a environment variable with a fallback default.
func getEnvDefault(key string, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
