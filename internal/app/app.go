// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/esports-hub/internal/config"
	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/account/policy"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/account/session"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/esports-hub/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/platform/resilience"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const metricsNamespace = "esports_hub"

// Storage is an opened document backend plus whatever must be released with it.
type Storage struct {
	Backend document.Backend
	close   func() error
}

func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens the backend named by STORAGE_BACKEND and seeds it when
// SEED_ON_START is set.
func OpenStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Storage, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var storage *Storage
	switch cfg.StorageBackend {
	case config.StorageMemory:
		storage = &Storage{Backend: memory.NewBackend()}
	case config.StoragePostgres:
		db, err := sqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters))
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		breaker := resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.DBCircuitEnabled,
			FailureThreshold: cfg.DBCircuitFailureCount,
			OpenTimeout:      cfg.DBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
		})
		logger.Info("postgres storage ready",
			"database", dbNameFromURL(cfg.DBURL),
			"circuit_breaker", cfg.DBCircuitEnabled,
		)
		storage = &Storage{Backend: postgres.NewDocumentBackend(db, breaker), close: db.Close}
	case config.StorageFile, "":
		storage = &Storage{Backend: filestore.New(cfg.DataDir, logger)}
		logger.Info("file storage ready", "dir", cfg.DataDir)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.SeedOnStart {
		seeded, err := memory.Seed(ctx, storage.Backend)
		if err != nil {
			_ = storage.Close()
			return nil, fmt.Errorf("seed storage: %w", err)
		}
		logger.Info("storage seeded", "resources", seeded)
	}

	return storage, nil
}

type repositories struct {
	news        news.Repository
	tournaments tournament.Repository
	teams       team.Repository
	leaderboard leaderboard.Repository
	prediction  prediction.Repository
	cache       *basecache.Store
}

func newRepositories(backend document.Backend, cfg config.Config) repositories {
	repos := repositories{
		news:        document.NewNewsCollection(backend),
		tournaments: document.NewTournamentCollection(backend),
		teams:       document.NewTeamCollection(backend),
		leaderboard: document.NewLeaderboardSingleton(backend),
		prediction:  document.NewPredictionSingleton(backend),
	}
	if !cfg.CacheEnabled {
		return repos
	}

	store := basecache.NewStore(cfg.CacheTTL)
	repos.cache = store
	repos.news = cache.NewNewsRepository(repos.news, store)
	repos.tournaments = cache.NewTournamentRepository(repos.tournaments, store)
	repos.teams = cache.NewTeamRepository(repos.teams, store)
	repos.leaderboard = cache.NewLeaderboardRepository(repos.leaderboard, store)
	repos.prediction = cache.NewPredictionRepository(repos.prediction, store)
	return repos
}

// NewMaintenanceService builds the normalize job over every stored resource.
func NewMaintenanceService(backend document.Backend, workers int, logger *logging.Logger) *usecase.MaintenanceService {
	rewriters := make(map[string]usecase.Rewriter)
	for resource, rw := range document.Rewriters(backend) {
		rewriters[resource] = rw
	}
	return usecase.NewMaintenanceService(rewriters, workers, logger)
}

// NewSessionManager signs and verifies admin session tokens with SESSION_SECRET.
func NewSessionManager(cfg config.Config) (*session.Manager, error) {
	return session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
}

// App is the assembled API process.
type App struct {
	Server  *http.Server
	storage *Storage
	watcher *policy.Watcher
}

// New assembles the HTTP server on top of an opened storage. The returned App
// owns storage and closes it in Close.
func New(ctx context.Context, cfg config.Config, storage *Storage, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos := newRepositories(storage.Backend, cfg)
	ids := idgen.NewUUIDGenerator()

	newsSvc := usecase.NewNewsService(repos.news, ids)
	tournamentSvc := usecase.NewTournamentService(repos.tournaments, ids)
	teamSvc := usecase.NewTeamService(repos.teams, ids)
	leaderboardSvc := usecase.NewLeaderboardService(repos.leaderboard, logger)
	predictionSvc := usecase.NewPredictionService(repos.prediction)
	homeSvc := usecase.NewHomeService(newsSvc, tournamentSvc, leaderboardSvc, predictionSvc)

	handler := httpapi.NewHandler(newsSvc, tournamentSvc, teamSvc, leaderboardSvc, predictionSvc, homeSvc, logger)

	a := &App{storage: storage}
	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthEnabled:        cfg.AuthEnabled,
	}
	if cfg.WriteRateLimit > 0 {
		routerCfg.WriteLimiter = httpapi.NewIPRateLimiter(cfg.WriteRateLimit, cfg.WriteRateBurst)
	}

	if cfg.AuthEnabled {
		sessions, err := NewSessionManager(cfg)
		if err != nil {
			return nil, fmt.Errorf("build session manager: %w", err)
		}
		admins, err := policy.NewStore(cfg.AdminEmails, cfg.AdminPolicyFile, logger)
		if err != nil {
			return nil, fmt.Errorf("load admin policy: %w", err)
		}
		watcher, err := admins.Watch(ctx)
		if err != nil {
			return nil, fmt.Errorf("watch admin policy: %w", err)
		}
		a.watcher = watcher
		routerCfg.Verifier = sessions
		routerCfg.Policy = admins
		logger.Info("admin auth enabled", "admins", admins.Size(), "policy_file", cfg.AdminPolicyFile)
	} else {
		logger.Warn("admin auth disabled", "reason", "AUTH_ENABLED=false")
	}

	if cfg.MetricsEnabled {
		metrics := httpapi.NewMetrics(metricsNamespace)
		if repos.cache != nil {
			registerCacheMetrics(metrics.Registry(), repos.cache)
		}
		routerCfg.Metrics = metrics
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func registerCacheMetrics(reg *prometheus.Registry, store *basecache.Store) {
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Repository reads served from the cache.",
		}, func() float64 { return float64(store.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Repository reads that went to storage.",
		}, func() float64 { return float64(store.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Live cache entries.",
		}, func() float64 { return float64(store.Stats().Entries) }),
	)
}

// Close stops the policy watcher and releases storage.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return errors.Join(a.watcher.Close(), a.storage.Close())
}
