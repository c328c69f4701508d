package server

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by [ConfigFromEnv].
const (
	EnvPort  = "PORT"
	EnvCache = "PRISMAFLOW_CACHE"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = "8080"

// Config holds the service settings taken from the environment.
type Config struct {
	Addr     string // listen address, ":<port>"
	CacheURL string // see cache.Open; "" means the file cache
}

// ConfigFromEnv loads a .env file from the working directory when present
// and reads PORT and PRISMAFLOW_CACHE. Variables already set in the process
// environment win over the file.
func ConfigFromEnv() Config {
	_ = godotenv.Load()
	return Config{
		Addr:     ":" + getenv(EnvPort, DefaultPort),
		CacheURL: os.Getenv(EnvCache),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
