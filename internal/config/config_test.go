package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "admin@esports.example.com")
	t.Setenv("STORAGE_BACKEND", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageBackend(t *testing.T) {
	t.Run("defaults to file store under data", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DATA_DIR", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageBackend != StorageFile || cfg.DataDir != "data" {
			t.Fatalf("unexpected storage: backend=%q dir=%q", cfg.StorageBackend, cfg.DataDir)
		}
		if cfg.SeedOnStart {
			t.Fatalf("expected SeedOnStart=false for file backend")
		}
	})

	t.Run("memory seeds by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_BACKEND", "Memory")
		t.Setenv("SEED_ON_START", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageBackend != StorageMemory || !cfg.SeedOnStart {
			t.Fatalf("unexpected storage: backend=%q seed=%v", cfg.StorageBackend, cfg.SeedOnStart)
		}
	})

	t.Run("postgres requires db url", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_BACKEND", StoragePostgres)
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_BACKEND=postgres without DB_URL")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_BACKEND", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_BACKEND")
		}
	})
}

func TestLoad_AuthRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "enabled with secret and allow-list", env: map[string]string{}},
		{name: "missing secret", env: map[string]string{"SESSION_SECRET": ""}, wantErr: true},
		{name: "missing admins", env: map[string]string{"ADMIN_EMAILS": ""}, wantErr: true},
		{name: "policy file replaces allow-list", env: map[string]string{"ADMIN_EMAILS": "", "ADMIN_POLICY_FILE": "admins.yaml"}},
		{name: "disabled in dev", env: map[string]string{"AUTH_ENABLED": "false", "SESSION_SECRET": "", "ADMIN_EMAILS": ""}},
		{name: "disabled in prod", env: map[string]string{"AUTH_ENABLED": "false", "APP_ENV": EnvProd}, wantErr: true},
		{name: "invalid rate", env: map[string]string{"WRITE_RATE_LIMIT": "fast"}, wantErr: true},
		{name: "zero burst", env: map[string]string{"WRITE_RATE_BURST": "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_AuthParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_EMAILS", " lead@esports.example.com, ,editor@esports.example.com ")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("WRITE_RATE_LIMIT", "0.5")
	t.Setenv("WRITE_RATE_BURST", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if diff := cmp.Diff([]string{"lead@esports.example.com", "editor@esports.example.com"}, cfg.AdminEmails); diff != "" {
		t.Fatalf("unexpected admin emails (-want +got):\n%s", diff)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
	}
	if cfg.WriteRateLimit != 0.5 || cfg.WriteRateBurst != 3 {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.WriteRateLimit, cfg.WriteRateBurst)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "logs.example.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackEndpoint != "logs.example.betterstackdata.com" {
		t.Fatalf("unexpected BetterStackEndpoint: %q", cfg.BetterStackEndpoint)
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "error" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
		if !cfg.MetricsEnabled {
			t.Fatalf("expected MetricsEnabled=true by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "esports-hub-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "esports-hub-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default wildcard", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if diff := cmp.Diff([]string{"*"}, cfg.CORSAllowedOrigins); diff != "" {
			t.Fatalf("unexpected default CORS origins (-want +got):\n%s", diff)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		want := []string{"https://a.example.com", "http://localhost:5173"}
		if diff := cmp.Diff(want, cfg.CORSAllowedOrigins); diff != "" {
			t.Fatalf("unexpected CORS origins (-want +got):\n%s", diff)
		}
	})
}

func TestLoad_DBBinaryParametersParsing(t *testing.T) {
	t.Run("default true", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DB_BINARY_PARAMETERS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBBinaryParameters {
			t.Fatalf("expected DBBinaryParameters=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DB_BINARY_PARAMETERS", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_BINARY_PARAMETERS")
		}
	})
}

func TestLoad_CacheAndWorkerParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")
		t.Setenv("NORMALIZE_WORKERS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
		if cfg.NormalizeWorkers != 4 {
			t.Fatalf("unexpected default normalize workers: %d", cfg.NormalizeWorkers)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("negative ttl", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CACHE_TTL", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative CACHE_TTL")
		}
	})

	t.Run("zero workers", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("NORMALIZE_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for NORMALIZE_WORKERS=0")
		}
	})
}

func TestLoad_CircuitBreakerParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("DB_CIRCUIT_OPEN_TIMEOUT", "5s")
	t.Setenv("DB_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.DBCircuitEnabled || cfg.DBCircuitFailureCount != 3 || cfg.DBCircuitOpenTimeout != 5*time.Second || cfg.DBCircuitHalfOpenMaxReq != 1 {
		t.Fatalf("unexpected circuit config: %+v", cfg)
	}

	t.Setenv("DB_CIRCUIT_FAILURE_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for DB_CIRCUIT_FAILURE_COUNT=0")
	}
}
