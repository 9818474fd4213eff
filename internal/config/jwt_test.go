package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DisabledWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg, "verification is disabled when JWT_SECRET is unset")
}

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123456789")
	t.Setenv("JWT_LEEWAY_SECONDS", "")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key-0123456789", cfg.Secret)
	assert.Equal(t, 30*time.Second, cfg.Leeway, "should use default leeway of 30 seconds")
	assert.Empty(t, cfg.Issuer)
}

func TestNewJWTConfig_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123456789")
	t.Setenv("JWT_ISSUER", "credential-store")

	tests := []struct {
		name    string
		leeway  string
		want    time.Duration
		wantErr bool
	}{
		{"zero leeway", "0", 0, false},
		{"two minutes", "120", 2 * time.Minute, false},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_LEEWAY_SECONDS", tt.leeway)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Leeway)
			assert.Equal(t, "credential-store", cfg.Issuer)
		})
	}
}

func TestNewJWTConfig_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "at least 16 bytes")
}
