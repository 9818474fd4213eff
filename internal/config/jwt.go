package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig holds the settings for verifying bearer tokens. Tokens are issued
// by an external credential store; this service only checks them.
type JWTConfig struct {
	Secret string
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

// NewJWTConfig reads JWT_SECRET, JWT_ISSUER and JWT_LEEWAY_SECONDS (default 30).
// It returns nil, nil when JWT_SECRET is unset, which disables verification.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil
	}

	leewayStr := os.Getenv("JWT_LEEWAY_SECONDS")
	if leewayStr == "" {
		leewayStr = "30"
	}
	leewaySeconds, err := strconv.Atoi(leewayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LEEWAY_SECONDS: %v", err)
	}

	config := &JWTConfig{
		Secret: secret,
		Issuer: os.Getenv("JWT_ISSUER"),
		Leeway: time.Duration(leewaySeconds) * time.Second,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 bytes, got: %d", len(c.Secret))
	}
	if c.Leeway < 0 {
		return fmt.Errorf("JWT_LEEWAY_SECONDS must not be negative, got: %s", c.Leeway)
	}
	return nil
}
