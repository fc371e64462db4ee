package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	IsProd         bool          // Is production environment
	IsDemo         bool          // Restricted demo deployment, blocks password changes
	SuperAdminID   uint64        // Account with unrestricted visibility
	ProtectedID    uint64        // Account that can never be deleted
	PasswordDigest string        // Password digest algorithm name
	SessionTTL     time.Duration // Lifetime of a login session
	RootPassword   string        // Initial password for the seeded root account
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),                   // Application port
		DBUser:         os.Getenv("DB_USER"),                    // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                // Database password
		DBHost:         os.Getenv("DB_HOST"),                    // Database host
		DBPort:         os.Getenv("DB_PORT"),                    // Database port
		DBName:         os.Getenv("DB_NAME"),                    // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                 // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),                 // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                 // Redis password
		RedisDB:        redisDB,                                 // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",          // Is production environment
		IsDemo:         os.Getenv("SYS_DEMO") == "1",            // Demo deployment flag
		SuperAdminID:   uintOr("SUPER_ADMIN_ID", 1),             // Super-admin account id
		ProtectedID:    uintOr("PROTECTED_USER_ID", 1),          // Undeletable account id
		PasswordDigest: stringOr("PASSWORD_DIGEST", "sha256"),   // Password digest algorithm
		SessionTTL:     durationOr("SESSION_TTL", 24*time.Hour), // Session lifetime
		RootPassword:   stringOr("ROOT_PASSWORD", "admin"),      // Seeded root password
	}
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&clientFoundRows=true" // Report matched rows, the password swap relies on it
}

// IsRestrictedEnvironment reports whether the deployment is a locked-down demo
func (c *Config) IsRestrictedEnvironment() bool {
	return c.IsDemo
}

// stringOr returns the variable or def when unset
func stringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v // Use configured value
	}
	return def // Fall back to default
}

// uintOr parses an unsigned id, falling back to def when unset or invalid
func uintOr(key string, def uint64) uint64 {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, 64); err == nil && v > 0 {
		return v // Use configured value
	}
	return def // Fall back to default
}

// durationOr parses a Go duration, falling back to def when unset or invalid
func durationOr(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v // Use configured value
	}
	return def // Fall back to default
}
