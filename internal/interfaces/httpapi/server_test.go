package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/account/policy"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/account/session"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const (
	adminEmail    = "admin@example.com"
	outsiderEmail = "fan@example.com"
)

type testServer struct {
	handler       http.Handler
	adminToken    string
	outsiderToken string
}

func newTestServer(t *testing.T, backend document.Backend, configure ...func(*RouterConfig)) *testServer {
	t.Helper()

	logger := logging.NewNop()
	ids := idgen.NewUUIDGenerator()

	newsService := usecase.NewNewsService(document.NewNewsCollection(backend), ids)
	tournamentService := usecase.NewTournamentService(document.NewTournamentCollection(backend), ids)
	teamService := usecase.NewTeamService(document.NewTeamCollection(backend), ids)
	leaderboardService := usecase.NewLeaderboardService(document.NewLeaderboardSingleton(backend), logger)
	predictionService := usecase.NewPredictionService(document.NewPredictionSingleton(backend))
	homeService := usecase.NewHomeService(newsService, tournamentService, leaderboardService, predictionService)

	manager, err := session.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new session manager: %v", err)
	}
	store, err := policy.NewStore([]string{adminEmail}, "", logger)
	if err != nil {
		t.Fatalf("new policy store: %v", err)
	}

	cfg := RouterConfig{
		Logger:      logger,
		AuthEnabled: true,
		Verifier:    manager,
		Policy:      store,
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	handler := NewHandler(newsService, tournamentService, teamService, leaderboardService, predictionService, homeService, logger)
	adminToken, err := manager.Issue(adminEmail, 0)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	outsiderToken, err := manager.Issue(outsiderEmail, 0)
	if err != nil {
		t.Fatalf("issue outsider token: %v", err)
	}

	return &testServer{
		handler:       NewRouter(handler, cfg),
		adminToken:    adminToken,
		outsiderToken: outsiderToken,
	}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, memory.NewBackend())

	rec := srv.do(t, http.MethodGet, "/healthz", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string]string](t, rec); got["status"] != "ok" {
		t.Fatalf("unexpected health body: %v", got)
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t, memory.NewBackend())

	rec := srv.do(t, http.MethodGet, "/v1/fixtures", "", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestRouter_SwaggerDisabledByDefault(t *testing.T) {
	srv := newTestServer(t, memory.NewBackend())
	expectStatus(t, srv.do(t, http.MethodGet, "/openapi.yaml", "", ""), http.StatusNotFound)

	enabled := newTestServer(t, memory.NewBackend(), func(cfg *RouterConfig) { cfg.SwaggerEnabled = true })
	rec := enabled.do(t, http.MethodGet, "/openapi.yaml", "", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "title: Esports Hub API") {
		t.Fatalf("unexpected openapi document: %.80s", rec.Body.String())
	}
	expectStatus(t, enabled.do(t, http.MethodGet, "/docs", "", ""), http.StatusOK)
}
