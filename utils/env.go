// utils/env.go
package utils

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort         = "5000"
	DefaultDBName       = "gameDB"
	DefaultDBCluster    = "cluster0.rcb0n.mongodb.net"
	DefaultDBAppName    = "Cluster0"
	DefaultStoreTimeout = 10 * time.Second
	DefaultPingInterval = time.Minute
	DefaultBodyLimit    = 4 * 1024 * 1024

	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Config is everything the server reads from the environment.
// Call godotenv.Load before LoadConfig to pick up a local .env file.
type Config struct {
	Port           string
	AllowedOrigins string

	DBUser      string
	DBPass      string
	DBCluster   string
	DBAppName   string
	DBName      string
	URIOverride string // MONGODB_URI, used verbatim when set

	StoreDriver  string
	StoreTimeout time.Duration
	PingInterval time.Duration
	BodyLimit    int
}

func LoadConfig() Config {
	return Config{
		Port:           envOrDefault("PORT", DefaultPort),
		AllowedOrigins: envOrDefault("ALLOWED_ORIGINS", "*"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBCluster:      envOrDefault("DB_CLUSTER", DefaultDBCluster),
		DBAppName:      envOrDefault("DB_APP_NAME", DefaultDBAppName),
		DBName:         envOrDefault("DB_NAME", DefaultDBName),
		URIOverride:    strings.TrimSpace(os.Getenv("MONGODB_URI")),
		StoreDriver:    strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverMongo)),
		StoreTimeout:   durationEnvOrDefault("STORE_TIMEOUT", DefaultStoreTimeout),
		PingInterval:   durationEnvOrDefault("DB_PING_INTERVAL", DefaultPingInterval),
		BodyLimit:      intEnvOrDefault("BODY_LIMIT", DefaultBodyLimit),
	}
}

// DatabaseURI returns the connection string for the hosted cluster.
func (c Config) DatabaseURI() (string, error) {
	u, err := c.databaseURL()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// RedactedURI is DatabaseURI with the password masked, safe to log.
func (c Config) RedactedURI() string {
	u, err := c.databaseURL()
	if err != nil {
		return ""
	}
	return u.Redacted()
}

func (c Config) databaseURL() (*url.URL, error) {
	if c.URIOverride != "" {
		u, err := url.Parse(c.URIOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid MONGODB_URI: %w", err)
		}
		return u, nil
	}
	if c.DBUser == "" || c.DBPass == "" {
		return nil, fmt.Errorf("DB_USER and DB_PASS must be set")
	}

	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	q.Set("appName", c.DBAppName)
	return &url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBCluster,
		Path:     "/",
		RawQuery: q.Encode(),
	}, nil
}

func envOrDefault(key, defaultValue string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}
