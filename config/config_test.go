package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "LOG_LEVEL", "DB_AUTO_MIGRATE", "REPORT_CACHE_TTL", "JWT_EXPIRY", "MONEY_THOUSANDS_SEPARATOR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != slog.LevelInfo {
		t.Errorf("Server.LogLevel = %v, want INFO", cfg.Server.LogLevel)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate = false, want true")
	}
	if cfg.Redis.ReportCacheTTL != 10*time.Minute {
		t.Errorf("Redis.ReportCacheTTL = %v, want 10m", cfg.Redis.ReportCacheTTL)
	}
	if cfg.JWT.AccessTokenExpiry != 12*time.Hour {
		t.Errorf("JWT.AccessTokenExpiry = %v, want 12h", cfg.JWT.AccessTokenExpiry)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("LOGIN_RATE_LIMIT", "0")
	t.Setenv("MONEY_THOUSANDS_SEPARATOR", ",")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != slog.LevelDebug {
		t.Errorf("Server.LogLevel = %v, want DEBUG", cfg.Server.LogLevel)
	}
	if cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate = true, want false")
	}
	if cfg.Redis.ReportCacheTTL != 30*time.Second {
		t.Errorf("Redis.ReportCacheTTL = %v, want 30s", cfg.Redis.ReportCacheTTL)
	}
	if cfg.Server.LoginRateLimit != 0 {
		t.Errorf("Server.LoginRateLimit = %d, want 0", cfg.Server.LoginRateLimit)
	}
	if cfg.Ledger.ThousandsSeparator != "," {
		t.Errorf("Ledger.ThousandsSeparator = %q, want %q", cfg.Ledger.ThousandsSeparator, ",")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("REPORT_CACHE_TTL", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != slog.LevelInfo {
		t.Errorf("Server.LogLevel = %v, want INFO", cfg.Server.LogLevel)
	}
	if cfg.Redis.ReportCacheTTL != 10*time.Minute {
		t.Errorf("Redis.ReportCacheTTL = %v, want 10m", cfg.Redis.ReportCacheTTL)
	}
}
