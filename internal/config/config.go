package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. It is constructed once at startup
// and passed into components via their constructors; nothing reads the
// environment after Load returns.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// ListenAddr is the HTTP listen address for serve mode, e.g. ":8080".
	ListenAddr string

	// CursorSecret signs feed pagination cursors.
	CursorSecret string

	// Identity provider settings. Bearer tokens must be issued by Issuer
	// for Audience; keys are fetched from the issuer's JWKS endpoint.
	IdentityIssuer   string
	IdentityAudience string
	IdentityJWKSURL  string

	// Blob store (S3-compatible) settings.
	BlobEndpoint  string
	BlobRegion    string
	BlobBucket    string
	BlobAccessKey string
	BlobSecretKey string
	// BlobPublicURL, when set, is used as a CDN base for retrieval URLs
	// instead of presigned links.
	BlobPublicURL string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present (development convenience; real
// deployments set variables directly).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
		CursorSecret:     os.Getenv("CURSOR_SECRET"),
		IdentityIssuer:   os.Getenv("IDENTITY_ISSUER"),
		IdentityAudience: os.Getenv("IDENTITY_AUDIENCE"),
		IdentityJWKSURL:  os.Getenv("IDENTITY_JWKS_URL"),
		BlobEndpoint:     os.Getenv("BLOB_ENDPOINT"),
		BlobRegion:       os.Getenv("BLOB_REGION"),
		BlobBucket:       os.Getenv("BLOB_BUCKET"),
		BlobAccessKey:    os.Getenv("BLOB_ACCESS_KEY_ID"),
		BlobSecretKey:    os.Getenv("BLOB_SECRET_ACCESS_KEY"),
		BlobPublicURL:    os.Getenv("BLOB_PUBLIC_URL"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.BlobRegion == "" {
		cfg.BlobRegion = "auto"
	}
	if cfg.IdentityJWKSURL == "" && cfg.IdentityIssuer != "" {
		cfg.IdentityJWKSURL = cfg.IdentityIssuer + "/.well-known/jwks.json"
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CursorSecret == "" {
		return Config{}, fmt.Errorf("CURSOR_SECRET is required")
	}

	return cfg, nil
}
