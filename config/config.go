package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port    string
	GinMode string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWT       JWTConfig
	Login     LoginConfig
	Bootstrap BootstrapAdmin

	BcryptCost       int
	IdentityCacheTTL time.Duration

	JobsEnabled       bool
	MigrationsEnabled bool
	AllowedOrigins    []string

	LogLevel  string
	LogFormat string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

type LoginConfig struct {
	MaxFailures   int
	FailureWindow time.Duration
	RatePerSecond float64
	RateBurst     int
}

// BootstrapAdmin is the seed super-admin that exists only in configuration.
// It is never written to the store; an empty email disables it.
type BootstrapAdmin struct {
	Name     string
	Email    string
	Password string
}

func (b BootstrapAdmin) Enabled() bool {
	return b.Email != "" && b.Password != ""
}

/*
* Load the .env file if present, then read every key from the environment
* Absence of the signing secret is fatal for the caller
 */
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "release"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "hospitalhub"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    getDuration("JWT_TTL", 7*24*time.Hour),
			Issuer: getEnv("JWT_ISSUER", "hospitalhub"),
		},
		Login: LoginConfig{
			MaxFailures:   getInt("LOGIN_MAX_FAILURES", 5),
			FailureWindow: getDuration("LOGIN_FAILURE_WINDOW", 15*time.Minute),
			RatePerSecond: getFloat("LOGIN_RATE_PER_SECOND", 5),
			RateBurst:     getInt("LOGIN_RATE_BURST", 10),
		},
		Bootstrap: BootstrapAdmin{
			Name:     getEnv("BOOTSTRAP_ADMIN_NAME", "Platform Super Admin"),
			Email:    strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))),
			Password: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		},
		BcryptCost:        getInt("BCRYPT_COST", 10),
		IdentityCacheTTL:  getDuration("IDENTITY_CACHE_TTL", 5*time.Minute),
		JobsEnabled:       getBool("JOBS_ENABLED", true),
		MigrationsEnabled: getBool("MIGRATIONS_ENABLED", true),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	if c.StoreDriver != StoreDriverMongo && c.StoreDriver != StoreDriverMemory {
		return fmt.Errorf("invalid STORE_DRIVER %q (must be %q or %q)", c.StoreDriver, StoreDriverMongo, StoreDriverMemory)
	}
	return nil
}

// ConfigureLogger applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
