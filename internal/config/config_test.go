package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/ss")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "mysql", cfg.DB.Driver)
		assert.Equal(t, ":8080", cfg.App.Addr)
		assert.Equal(t, 3*time.Second, cfg.Guard.RoleLookupTimeout)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "log", cfg.Mail.Driver)
		assert.Equal(t, "USD", cfg.Shop.Currency)
		assert.Equal(t, 20, cfg.Shop.WholesaleDiscountPct)
		assert.False(t, cfg.Session.Secure)
	})

	t.Run("missing DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN is required")
	})

	t.Run("guard timeout override", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("GUARD_ROLE_TIMEOUT", "750ms")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 750*time.Millisecond, cfg.Guard.RoleLookupTimeout)
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("DB_DRIVER", "oracle")
		t.Setenv("SESSION_TTL", "forever")
		t.Setenv("STORAGE_DRIVER", "s3")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown DB_DRIVER: oracle")
		assert.Contains(t, err.Error(), "SESSION_TTL")
		assert.Contains(t, err.Error(), "S3 config missing")
	})

	t.Run("production defaults to secure cookies", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("APP_ENV", "production")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.Session.Secure)
	})
}
