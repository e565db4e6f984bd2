package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/team"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.fail(ctx, w, teamSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.fail(ctx, w, teamSubject, "fetching", err, "team_id", teamID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var draft team.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, teamSubject, "creating", err)
		return
	}

	item, err := h.teamService.Create(ctx, draft)
	if err != nil {
		h.fail(ctx, w, teamSubject, "creating", err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, item)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var draft team.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, teamSubject, "updating", err, "team_id", teamID)
		return
	}

	item, err := h.teamService.Update(ctx, teamID, draft)
	if err != nil {
		h.fail(ctx, w, teamSubject, "updating", err, "team_id", teamID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.fail(ctx, w, teamSubject, "deleting", err, "team_id", teamID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamSubject.deleted())
}
