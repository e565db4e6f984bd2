package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	StorageBackend          string
	DataDir                 string
	SeedOnStart             bool
	DBURL                   string
	DBBinaryParameters      bool
	DBCircuitEnabled        bool
	DBCircuitFailureCount   int
	DBCircuitOpenTimeout    time.Duration
	DBCircuitHalfOpenMaxReq int
	CacheEnabled            bool
	CacheTTL                time.Duration
	NormalizeWorkers        int

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	MetricsEnabled     bool

	AuthEnabled     bool
	SessionSecret   string
	SessionTTL      time.Duration
	AdminEmails     []string
	AdminPolicyFile string
	WriteRateLimit  float64 // writes per second per client IP; 0 disables limiting
	WriteRateBurst  int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "esports-hub-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	if cfg.ReadTimeout, err = positiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = positiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadHTTP(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAuth(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	backend, err := parseStorageBackend(getEnv("STORAGE_BACKEND", StorageFile))
	if err != nil {
		return err
	}
	cfg.StorageBackend = backend
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if backend == StorageFile && cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required when STORAGE_BACKEND=%s", StorageFile)
	}

	seedDefault := "false"
	if backend == StorageMemory {
		seedDefault = "true"
	}
	if cfg.SeedOnStart, err = strconv.ParseBool(getEnv("SEED_ON_START", seedDefault)); err != nil {
		return fmt.Errorf("parse SEED_ON_START: %w", err)
	}

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if backend == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_BACKEND=%s", StoragePostgres)
	}
	if cfg.DBBinaryParameters, err = strconv.ParseBool(getEnv("DB_BINARY_PARAMETERS", "true")); err != nil {
		return fmt.Errorf("parse DB_BINARY_PARAMETERS: %w", err)
	}

	if cfg.DBCircuitEnabled, err = strconv.ParseBool(getEnv("DB_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse DB_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.DBCircuitFailureCount, err = getEnvAsInt("DB_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse DB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.DBCircuitFailureCount < 1 {
		return fmt.Errorf("DB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.DBCircuitOpenTimeout, err = positiveDuration("DB_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.DBCircuitHalfOpenMaxReq, err = getEnvAsInt("DB_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse DB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.DBCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("DB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = positiveDuration("CACHE_TTL", "30s"); err != nil {
		return err
	}

	if cfg.NormalizeWorkers, err = getEnvAsInt("NORMALIZE_WORKERS", 4); err != nil {
		return fmt.Errorf("parse NORMALIZE_WORKERS: %w", err)
	}
	if cfg.NormalizeWorkers < 1 {
		return fmt.Errorf("NORMALIZE_WORKERS must be >= 1")
	}
	return nil
}

func loadHTTP(cfg *Config) error {
	swaggerDefault := "true"
	if cfg.AppEnv == EnvProd {
		swaggerDefault = "false"
	}

	var err error
	if cfg.SwaggerEnabled, err = strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault)); err != nil {
		return fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	return nil
}

func loadAuth(cfg *Config) error {
	var err error
	if cfg.AuthEnabled, err = strconv.ParseBool(getEnv("AUTH_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse AUTH_ENABLED: %w", err)
	}
	if !cfg.AuthEnabled && cfg.AppEnv == EnvProd {
		return fmt.Errorf("AUTH_ENABLED=false is not allowed when APP_ENV=%s", EnvProd)
	}

	cfg.SessionSecret = strings.TrimSpace(getEnv("SESSION_SECRET", ""))
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL", "24h"); err != nil {
		return err
	}
	cfg.AdminEmails = splitCSV(getEnv("ADMIN_EMAILS", ""))
	cfg.AdminPolicyFile = strings.TrimSpace(getEnv("ADMIN_POLICY_FILE", ""))

	if cfg.AuthEnabled {
		if cfg.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required when AUTH_ENABLED=true")
		}
		if len(cfg.AdminEmails) == 0 && cfg.AdminPolicyFile == "" {
			return fmt.Errorf("ADMIN_EMAILS or ADMIN_POLICY_FILE is required when AUTH_ENABLED=true")
		}
	}

	if cfg.WriteRateLimit, err = strconv.ParseFloat(getEnv("WRITE_RATE_LIMIT", "2"), 64); err != nil {
		return fmt.Errorf("parse WRITE_RATE_LIMIT: %w", err)
	}
	if cfg.WriteRateLimit < 0 {
		return fmt.Errorf("WRITE_RATE_LIMIT must be >= 0")
	}
	if cfg.WriteRateBurst, err = getEnvAsInt("WRITE_RATE_BURST", 10); err != nil {
		return fmt.Errorf("parse WRITE_RATE_BURST: %w", err)
	}
	if cfg.WriteRateBurst < 1 {
		return fmt.Errorf("WRITE_RATE_BURST must be >= 1")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.BetterStackEnabled, err = strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	cfg.BetterStackEndpoint = strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	cfg.BetterStackToken = strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", ""))
	if cfg.BetterStackTimeout, err = positiveDuration("BETTERSTACK_TIMEOUT", "3s"); err != nil {
		return err
	}
	cfg.BetterStackMinLevel = logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "warn"))

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}
	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageFile, StoragePostgres, StorageMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_BACKEND %q: valid values are %s, %s, %s", v, StorageFile, StoragePostgres, StorageMemory)
	}
}
