package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicContentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/home", handler.GetHome)

	mux.HandleFunc("GET /v1/news", handler.ListNews)
	mux.HandleFunc("GET /v1/news/{newsID}", handler.GetNews)

	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/predictions", handler.GetPrediction)
}

func registerAdminContentRoutes(mux *http.ServeMux, handler *Handler, admin func(http.HandlerFunc) http.Handler) {
	mux.Handle("POST /v1/news", admin(handler.CreateNews))
	mux.Handle("PUT /v1/news/{newsID}", admin(handler.UpdateNews))
	mux.Handle("DELETE /v1/news/{newsID}", admin(handler.DeleteNews))

	mux.Handle("POST /v1/tournaments", admin(handler.CreateTournament))
	mux.Handle("PUT /v1/tournaments/{tournamentID}", admin(handler.UpdateTournament))
	mux.Handle("DELETE /v1/tournaments/{tournamentID}", admin(handler.DeleteTournament))

	mux.Handle("POST /v1/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/teams/{teamID}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", admin(handler.DeleteTeam))

	mux.Handle("PUT /v1/leaderboard", admin(handler.ReplaceLeaderboard))
	mux.Handle("DELETE /v1/leaderboard", admin(handler.ResetLeaderboard))

	mux.Handle("PUT /v1/predictions", admin(handler.SetPrediction))
	mux.Handle("POST /v1/predictions", admin(handler.SetPrediction))
	mux.Handle("DELETE /v1/predictions", admin(handler.ClearPrediction))
}
