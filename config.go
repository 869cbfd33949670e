package jwt

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
	"github.com/redis/go-redis/v9"

	"github.com/signcore/jwt/internal/security"
)

// Revocation store backends.
const (
	RevocationStoreMemory = "memory"
	RevocationStoreRedis  = "redis"
)

// RevocationConfig configures how revoked token IDs are tracked.
type RevocationConfig struct {
	// StoreType selects the backend: "memory" or "redis".
	StoreType string `env:"JWT_REVOCATION_STORE" envDefault:"memory"`

	// CleanupInterval specifies how often expired entries are removed
	// from the in-memory store.
	CleanupInterval time.Duration `env:"JWT_REVOCATION_CLEANUP_INTERVAL" envDefault:"5m"`

	// MaxSize caps the number of entries the in-memory store keeps.
	MaxSize int `env:"JWT_REVOCATION_MAX_SIZE" envDefault:"100000"`

	// EnableAutoCleanup runs periodic cleanup of expired entries.
	EnableAutoCleanup bool `env:"JWT_REVOCATION_AUTO_CLEANUP" envDefault:"true"`

	// RedisClient backs the "redis" store type. The client is owned by
	// the caller and is not closed with the processor.
	RedisClient *redis.Client `env:"-"`
}

// Config represents processor configuration.
type Config struct {
	// SecretKey is the secret used for signing tokens (minimum 32
	// bytes with sufficient entropy).
	SecretKey string `env:"JWT_SECRET_KEY"`

	// AccessTokenTTL defines the lifetime of access tokens.
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"15m"`

	// RefreshTokenTTL defines the lifetime of refresh tokens (must be
	// greater than AccessTokenTTL).
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Issuer identifies the principal that issues tokens.
	Issuer string `env:"JWT_ISSUER" envDefault:"jwt-service"`

	// SigningMethod specifies the algorithm used to sign tokens.
	SigningMethod SigningMethod `env:"JWT_SIGNING_METHOD" envDefault:"HS256"`

	// Revocation configures revoked-token tracking.
	Revocation RevocationConfig
}

// DefaultConfig returns a secure default configuration for production use.
func DefaultConfig() Config {
	return Config{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "jwt-service",
		SigningMethod:   SigningMethodHS256,
		Revocation: RevocationConfig{
			StoreType:         RevocationStoreMemory,
			CleanupInterval:   5 * time.Minute,
			MaxSize:           100000,
			EnableAutoCleanup: true,
		},
	}
}

// LoadConfig reads the configuration from the environment, honoring a
// .env file when one is present in the working directory.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if len(c.SecretKey) < 32 {
		return fmt.Errorf("%w: minimum 32 bytes required, got %d", ErrInvalidSecretKey, len(c.SecretKey))
	}
	if security.IsWeakKey([]byte(c.SecretKey)) {
		return fmt.Errorf("%w: key must have sufficient entropy and complexity", ErrInvalidSecretKey)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: TTL must be positive", ErrInvalidConfig)
	}
	if c.AccessTokenTTL >= c.RefreshTokenTTL {
		return fmt.Errorf("%w: access token TTL must be less than refresh token TTL", ErrInvalidConfig)
	}

	switch c.SigningMethod {
	case SigningMethodHS256, SigningMethodHS384, SigningMethodHS512, "":
	default:
		return ErrInvalidSigningMethod
	}

	switch c.Revocation.StoreType {
	case RevocationStoreMemory, "":
	case RevocationStoreRedis:
		if c.Revocation.RedisClient == nil {
			return fmt.Errorf("%w: redis revocation store requires a redis client", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown revocation store type %q", ErrInvalidConfig, c.Revocation.StoreType)
	}

	return nil
}
