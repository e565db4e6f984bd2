package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the HTTP stack. Auth is only
// enforced when AuthEnabled is set, and a nil WriteLimiter or Metrics turns
// that layer off.
type RouterConfig struct {
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	AuthEnabled        bool
	Verifier           TokenVerifier
	Policy             AdminPolicy
	WriteLimiter       *IPRateLimiter
	Metrics            *Metrics
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerPublicContentRoutes(mux, handler)
	registerAdminContentRoutes(mux, handler, adminChain(cfg, logger))

	var root http.Handler = mux
	if cfg.Metrics != nil {
		root = cfg.Metrics.Instrument(mux)
	}

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, root))))
}

// adminChain wraps write handlers: throttle first, then authenticate.
func adminChain(cfg RouterConfig, logger *logging.Logger) func(http.HandlerFunc) http.Handler {
	return func(fn http.HandlerFunc) http.Handler {
		var h http.Handler = fn
		if cfg.AuthEnabled {
			h = RequireAdmin(cfg.Verifier, cfg.Policy, logger, h)
		}
		if cfg.WriteLimiter != nil {
			h = RateLimitWrites(cfg.WriteLimiter, logger, h)
		}
		return h
	}
}
