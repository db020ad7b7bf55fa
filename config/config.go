package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // "postgres" (default) or "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	SQLitePath      string
	DBMigrationMode string // "auto" (default), "alter", "drop"

	// Server
	ServerPort      string
	CORSAllowOrigin string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT Authentication
	JWTSecretKey       string
	JWTExpirationHours int

	// Admin
	DefaultAdminPassword string
	AdminMFARequired     bool
	MFACodeTTLSeconds    int

	// Login rate limiting
	LoginRateLimitWindowSeconds int
	LoginRateLimitMaxAttempts   int

	// Password policy
	PasswordMinLength int

	// Pagination
	DefaultPageSize int

	// File storage
	UploadDir string
	BackupDir string

	// Backups and document purge
	BackupRetentionDays       int
	AutoPurgeExpired          bool
	PurgeValidityMonths       int
	PurgeGraceDays            int
	PurgeCheckIntervalMinutes int

	// Mail (OTP delivery)
	MailEnabled  bool
	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	// Get environment type (default to LOCAL if not set)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	// Set prefix based on environment type
	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	return &Config{
		// Environment type
		EnvType: envType,

		// Database config - use environment-specific variables if available
		DBDriver:        getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "postgres")),
		DBHost:          getEnv(prefix+"DB_HOST", getEnv("DB_HOST", "localhost")),
		DBUser:          getEnv(prefix+"DB_USER", getEnv("DB_USER", "postgres")),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", "postgres")),
		DBName:          getEnv(prefix+"DB_NAME", getEnv("DB_NAME", "barangay_db")),
		DBPort:          getEnv(prefix+"DB_PORT", getEnv("DB_PORT", "5432")),
		SQLitePath:      getEnv(prefix+"SQLITE_PATH", getEnv("SQLITE_PATH", "barangay.db")),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", getEnv("DB_MIGRATION_MODE", "alter")),

		// Server config
		ServerPort:      getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8080")),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "http://localhost:5173"),

		// Redis config
		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT Config
		JWTSecretKey:       getEnv("JWT_SECRET_KEY", "barangay-secret-key-change-in-production"),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 12),

		// Admin Config
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123!"),
		AdminMFARequired:     getEnvAsBool("ADMIN_MFA_REQUIRED", true),
		MFACodeTTLSeconds:    getEnvAsInt("MFA_CODE_TTL_SECONDS", 600),

		// Login rate limiting
		LoginRateLimitWindowSeconds: getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 600),
		LoginRateLimitMaxAttempts:   getEnvAsInt("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", 5),

		// Password policy
		PasswordMinLength: getEnvAsInt("PASSWORD_MIN_LENGTH", 10),

		// Pagination
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 20),

		// File storage
		UploadDir: getEnv("UPLOAD_DIR", "static/uploads"),
		BackupDir: getEnv("BACKUP_DIR", "backups"),

		// Backups and document purge
		BackupRetentionDays:       getEnvAsInt("BACKUP_RETENTION_DAYS", 7),
		AutoPurgeExpired:          getEnvAsBool("AUTO_PURGE_EXPIRED", true),
		PurgeValidityMonths:       getEnvAsInt("PURGE_VALIDITY_MONTHS", 6),
		PurgeGraceDays:            getEnvAsInt("PURGE_GRACE_DAYS", 30),
		PurgeCheckIntervalMinutes: getEnvAsInt("PURGE_CHECK_INTERVAL_MINUTES", 1440),

		// Mail config
		MailEnabled:  getEnvAsBool("MAIL_ENABLED", false),
		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getEnvAsInt("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@barangay.local"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable TimeZone=Asia/Manila"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
