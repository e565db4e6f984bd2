package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	doc, err := h.leaderboardService.Get(ctx)
	if err != nil {
		h.fail(ctx, w, leaderboardSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, doc)
}

func (h *Handler) ReplaceLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceLeaderboard")
	defer span.End()

	var doc leaderboard.Leaderboard
	if err := decodeJSON(w, r, &doc); err != nil {
		h.fail(ctx, w, leaderboardSubject, "updating", err)
		return
	}

	saved, err := h.leaderboardService.Replace(ctx, doc)
	if err != nil {
		h.fail(ctx, w, leaderboardSubject, "updating", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, saved)
}

func (h *Handler) ResetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetLeaderboard")
	defer span.End()

	doc, err := h.leaderboardService.Reset(ctx)
	if err != nil {
		h.fail(ctx, w, leaderboardSubject, "resetting", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, doc)
}

// GetPrediction writes null when no question is published.
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	q, err := h.predictionService.Get(ctx)
	if err != nil {
		h.fail(ctx, w, predictionSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, q)
}

func (h *Handler) SetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPrediction")
	defer span.End()

	var draft prediction.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, predictionSubject, "saving", err)
		return
	}

	q, err := h.predictionService.Set(ctx, draft)
	if err != nil {
		h.fail(ctx, w, predictionSubject, "saving", err)
		return
	}

	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusCreated
	}
	writeJSON(ctx, w, status, q)
}

func (h *Handler) ClearPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearPrediction")
	defer span.End()

	if err := h.predictionService.Clear(ctx); err != nil {
		h.fail(ctx, w, predictionSubject, "clearing", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageBody{Message: "Prediction cleared successfully"})
}

type homeFeedDTO struct {
	News        []news.Article          `json:"news"`
	Tournaments []tournament.Tournament `json:"tournaments"`
	Leaderboard leaderboard.Leaderboard `json:"leaderboard"`
	Prediction  *prediction.Question    `json:"prediction"`
}

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	feed, err := h.homeService.Get(ctx)
	if err != nil {
		h.fail(ctx, w, homeSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, homeFeedDTO{
		News:        feed.News,
		Tournaments: feed.Tournaments,
		Leaderboard: feed.Leaderboard,
		Prediction:  feed.Prediction,
	})
}
