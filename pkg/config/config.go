package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionBackendLocal = "local"
	SessionBackendRedis = "redis"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "your-super-secret-key-change-in-production"

type Config struct {
	AppName  string
	Port     string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	SQLitePath  string

	JWTSecret string
	JWTTTL    time.Duration

	// Inactivity window after which a session without heartbeat is rejected.
	IdleTimeout time.Duration

	CORSOrigins []string
	AccessLog   bool

	// Credentials of the account created on first start.
	AdminUsername string
	AdminPassword string

	SessionBackend   string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	// sqlite file holding the console session when SessionBackend is local.
	ConsoleStatePath string

	// Base URL of the REST API, used by the console client.
	APIBaseURL string
	APITimeout time.Duration
}

// Load reads an optional .env file (files[0], default ".env") and then the environment.
// A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		AppName:  GetEnv("APP_NAME", "POS Console API"),
		Port:     GetEnv("PORT", "8080"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		DBDriver:    GetEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBUser:      GetEnv("DB_USER", "postgres"),
		DBPassword:  GetEnv("DB_PASSWORD", ""),
		DBName:      GetEnv("DB_NAME", "pos"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		SQLitePath:  GetEnv("SQLITE_PATH", "pos.db"),

		JWTSecret:   GetEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:      GetEnvDuration("JWT_TTL", 24*time.Hour),
		IdleTimeout: GetEnvDuration("IDLE_TIMEOUT", 30*time.Minute),

		CORSOrigins: GetEnvSlice("CORS_ORIGINS", []string{"*"}),
		AccessLog:   GetEnvBool("ACCESS_LOG", true),

		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: GetEnv("ADMIN_PASSWORD", "admin123"),

		SessionBackend:   GetEnv("SESSION_BACKEND", SessionBackendLocal),
		ConsoleStatePath: GetEnv("CONSOLE_STATE_PATH", "console.db"),
		RedisAddr:        GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		RedisDB:          GetEnvInt("REDIS_DB", 0),

		APIBaseURL: GetEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		APITimeout: GetEnvDuration("API_TIMEOUT", 15*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case SessionBackendLocal, SessionBackendRedis:
	default:
		return fmt.Errorf("config: unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	return nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a DSN built from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
