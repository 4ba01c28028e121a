package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	EnvServerAddress      = "SERVER_ADDRESS"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvJWTSecret          = "JWT_SECRET"
	EnvAccessTokenTTL     = "ACCESS_TOKEN_TTL"
	EnvAuthRateLimit      = "AUTH_RATE_LIMIT"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvLogLevel           = "LOG_LEVEL"
)

// dotenvFile is the file loaded into the process environment before reading
// variables. Variables already set in the environment win.
var dotenvFile = ".env"

// parseEnv overlays config with environment variables. Malformed numeric or
// duration values panic, same as a malformed JSON file.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(EnvServerAddress); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvJWTSecret); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvAccessTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvAuthRateLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.AuthRateLimit = n
	}
	if v, ok := os.LookupEnv(EnvCORSAllowedOrigins); ok && v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
