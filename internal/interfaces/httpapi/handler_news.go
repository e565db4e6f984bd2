package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/news"
)

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		h.fail(ctx, w, newsSubject, "fetching", err)
		return
	}

	items, err := h.newsService.List(ctx, limit)
	if err != nil {
		h.fail(ctx, w, newsSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("newsID"))
	item, err := h.newsService.Get(ctx, newsID)
	if err != nil {
		h.fail(ctx, w, newsSubject, "fetching", err, "news_id", newsID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateNews")
	defer span.End()

	var draft news.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, newsSubject, "creating", err)
		return
	}

	item, err := h.newsService.Create(ctx, draft)
	if err != nil {
		h.fail(ctx, w, newsSubject, "creating", err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, item)
}

func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("newsID"))
	var draft news.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, newsSubject, "updating", err, "news_id", newsID)
		return
	}

	item, err := h.newsService.Update(ctx, newsID, draft)
	if err != nil {
		h.fail(ctx, w, newsSubject, "updating", err, "news_id", newsID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("newsID"))
	if err := h.newsService.Delete(ctx, newsID); err != nil {
		h.fail(ctx, w, newsSubject, "deleting", err, "news_id", newsID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newsSubject.deleted())
}
