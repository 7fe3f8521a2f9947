package config

import (
	"os"
	"strconv"
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
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // "auto" (default), "drop"

	// Server
	ServerPort string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MQTT broker used for SOS alert dispatch
	MQTTBrokerURL string
	MQTTClientID  string
	MQTTUsername  string
	MQTTPassword  string
	MQTTSOSTopic  string

	// JWT Authentication
	JWTSecretKey        string
	RefreshTokenSecret  string
	AccessTokenTTLHours int
	RefreshTokenTTLDays int

	// Incident count at which a visitor is automatically blacklisted
	AutoBlacklistThreshold int

	// File storage
	UploadDir       string
	MaxUploadSizeMB int

	// Admin bootstrap
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables
func LoadConfig() *Config {
	return &Config{
		EnvType: getEnv("ENV_TYPE", "LOCAL"),

		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", "root"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "sonaby_db"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBMigrationMode: getEnv("DB_MIGRATION_MODE", "auto"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MQTTBrokerURL: getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:  getEnv("MQTT_CLIENT_ID", "sonaby-backend"),
		MQTTUsername:  getEnv("MQTT_USERNAME", ""),
		MQTTPassword:  getEnv("MQTT_PASSWORD", ""),
		MQTTSOSTopic:  getEnv("MQTT_SOS_TOPIC", "sonaby/sos/alert"),

		JWTSecretKey:        getEnv("JWT_SECRET_KEY", "sonaby-secret-key-change-in-production"),
		RefreshTokenSecret:  getEnv("REFRESH_TOKEN_SECRET", "sonaby-refresh-secret-change-in-production"),
		AccessTokenTTLHours: getEnvAsInt("ACCESS_TOKEN_TTL_HOURS", 24),
		RefreshTokenTTLDays: getEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 7),

		AutoBlacklistThreshold: getEnvAsInt("AUTO_BLACKLIST_THRESHOLD", 3),

		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSizeMB: getEnvAsInt("MAX_UPLOAD_SIZE_MB", 10),

		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@example.com"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true"
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
