package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SYS_DEMO", "SUPER_ADMIN_ID", "PROTECTED_USER_ID", "PASSWORD_DIGEST", "SESSION_TTL", "ROOT_PASSWORD"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	require.False(t, cfg.IsRestrictedEnvironment())
	require.Equal(t, uint64(1), cfg.SuperAdminID)
	require.Equal(t, uint64(1), cfg.ProtectedID)
	require.Equal(t, "sha256", cfg.PasswordDigest)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "admin", cfg.RootPassword)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SYS_DEMO", "1")
	t.Setenv("SUPER_ADMIN_ID", "5")
	t.Setenv("PROTECTED_USER_ID", "6")
	t.Setenv("PASSWORD_DIGEST", "sha3-256")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "2")
	cfg := LoadConfig()

	require.True(t, cfg.IsRestrictedEnvironment())
	require.Equal(t, uint64(5), cfg.SuperAdminID)
	require.Equal(t, uint64(6), cfg.ProtectedID)
	require.Equal(t, "sha3-256", cfg.PasswordDigest)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("SUPER_ADMIN_ID", "root")
	t.Setenv("SESSION_TTL", "forever")
	cfg := LoadConfig()

	require.Equal(t, uint64(1), cfg.SuperAdminID)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "admin"}
	require.Equal(t, "u:p@tcp(db:3306)/admin?parseTime=true&clientFoundRows=true", cfg.DSN())
}
