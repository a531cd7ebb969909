package config

import "os"

// Config holds all application configuration, read from environment
// variables with sensible defaults.
//
// Environment Variables:
// - PORT: HTTP listen port (default: 8080)
// - JOBTRACKER_DB: path to the local SQLite file (default: jobtracker.sqlite)
// - IDENTITY_API_URL: base URL of the external identity service
//   (default: https://identitytoolkit.googleapis.com)
// - IDENTITY_API_KEY: API key passed to the identity service (required for
//   sign-in/sign-up to succeed)
// - SNAPSHOT_CRON: cron expression for periodic persistence snapshots
//   (default: "0 3 * * *"; empty string disables snapshots)
type Config struct {
	Port           string
	DBPath         string
	IdentityAPIURL string
	IdentityAPIKey string
	SnapshotCron   string
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		DBPath:         getenv("JOBTRACKER_DB", "jobtracker.sqlite"),
		IdentityAPIURL: getenv("IDENTITY_API_URL", "https://identitytoolkit.googleapis.com"),
		IdentityAPIKey: os.Getenv("IDENTITY_API_KEY"),
		SnapshotCron:   getenv("SNAPSHOT_CRON", "0 3 * * *"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
