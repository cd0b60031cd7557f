package config

import (
	"testing"
	"time"
)

func TestLoadConfig_SQLiteDefaults(t *testing.T) {
	t.Setenv("TRIPS_PRIMARY.ENV", "local")
	t.Setenv("TRIPS_DATABASE.DRIVER", "sqlite")
	t.Setenv("TRIPS_DATABASE.PATH", ":memory:")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want default 8080", cfg.Server.Port)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Errorf("cors origins = %v, want [*]", cfg.Server.CORSAllowedOrigins)
	}
	if !cfg.IsLocal() {
		t.Error("expected local environment")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("service name = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Observability.Environment != "local" {
		t.Errorf("observability env = %q, want local", cfg.Observability.Environment)
	}
	if cfg.Observability.NewRelicEnabled() {
		t.Error("new relic must be disabled without a license key")
	}
	if !cfg.Observability.CheckEnabled("database") || !cfg.Observability.CheckEnabled("redis") {
		t.Errorf("default checks = %v, want database and redis", cfg.Observability.HealthChecks.Checks)
	}
}

func TestLoadConfig_OverridesFromEnv(t *testing.T) {
	t.Setenv("TRIPS_PRIMARY.ENV", "production")
	t.Setenv("TRIPS_SERVER.PORT", "9090")
	t.Setenv("TRIPS_SERVER.CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TRIPS_DATABASE.DRIVER", "postgres")
	t.Setenv("TRIPS_DATABASE.HOST", "db")
	t.Setenv("TRIPS_DATABASE.USER", "trips")
	t.Setenv("TRIPS_DATABASE.NAME", "trips")
	t.Setenv("TRIPS_OBSERVABILITY.LOGGING.LEVEL", "warn")
	t.Setenv("TRIPS_OBSERVABILITY.HEALTH_CHECKS.CHECKS", "database")
	t.Setenv("TRIPS_OBSERVABILITY.HEALTH_CHECKS.TIMEOUT", "2s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSAllowedOrigins) != len(want) {
		t.Fatalf("cors origins = %v, want %v", cfg.Server.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("cors origin %d = %q, want %q", i, cfg.Server.CORSAllowedOrigins[i], want[i])
		}
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("database port = %d, want default 5432", cfg.Database.Port)
	}
	if cfg.Observability.GetLogLevel() != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Observability.GetLogLevel())
	}
	if cfg.Observability.Logging.Format != "json" {
		t.Errorf("log format = %q, want default json", cfg.Observability.Logging.Format)
	}
	if cfg.Observability.HealthChecks.Timeout != 2*time.Second {
		t.Errorf("health timeout = %v, want 2s", cfg.Observability.HealthChecks.Timeout)
	}
	if cfg.Observability.CheckEnabled("redis") {
		t.Error("redis check should be disabled when only database is listed")
	}
	if !cfg.Observability.IsProduction() {
		t.Error("expected production environment")
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("TRIPS_DATABASE.DRIVER", "oracle")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error for unknown driver")
	}
}

func TestLoadConfig_PostgresRequiresHost(t *testing.T) {
	t.Setenv("TRIPS_DATABASE.DRIVER", "postgres")
	t.Setenv("TRIPS_DATABASE.HOST", "")
	t.Setenv("TRIPS_DATABASE.USER", "trips")
	t.Setenv("TRIPS_DATABASE.NAME", "trips")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error for missing postgres host")
	}
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative slow query threshold")
	}
}
