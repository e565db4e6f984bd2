package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	query, err := parseTournamentQuery(r)
	if err != nil {
		h.fail(ctx, w, tournamentSubject, "fetching", err)
		return
	}

	items, err := h.tournamentService.List(ctx, query)
	if err != nil {
		h.fail(ctx, w, tournamentSubject, "fetching", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

// parseTournamentQuery reads ?status=Ongoing,Upcoming&sort=status&limit=N.
func parseTournamentQuery(r *http.Request) (usecase.TournamentQuery, error) {
	limit, err := parseLimit(r)
	if err != nil {
		return usecase.TournamentQuery{}, err
	}

	query := usecase.TournamentQuery{Limit: limit}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		known, unknown := tournament.ParseStatuses(raw)
		if len(unknown) > 0 {
			return usecase.TournamentQuery{}, fmt.Errorf(
				"%w: unknown status %s, expected one of: %s, %s, %s",
				usecase.ErrInvalidInput,
				strings.Join(unknown, ","),
				tournament.StatusOngoing, tournament.StatusUpcoming, tournament.StatusCompleted,
			)
		}
		query.Statuses = known
	}

	switch sort := strings.TrimSpace(r.URL.Query().Get("sort")); sort {
	case "":
	case "status":
		query.SortByStatus = true
	default:
		return usecase.TournamentQuery{}, fmt.Errorf("%w: unsupported sort %q", usecase.ErrInvalidInput, sort)
	}
	return query, nil
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, tournamentSubject, "fetching", err, "tournament_id", tournamentID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var draft tournament.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, tournamentSubject, "creating", err)
		return
	}

	item, err := h.tournamentService.Create(ctx, draft)
	if err != nil {
		h.fail(ctx, w, tournamentSubject, "creating", err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, item)
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	var draft tournament.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		h.fail(ctx, w, tournamentSubject, "updating", err, "tournament_id", tournamentID)
		return
	}

	item, err := h.tournamentService.Update(ctx, tournamentID, draft)
	if err != nil {
		h.fail(ctx, w, tournamentSubject, "updating", err, "tournament_id", tournamentID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	if err := h.tournamentService.Delete(ctx, tournamentID); err != nil {
		h.fail(ctx, w, tournamentSubject, "deleting", err, "tournament_id", tournamentID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, tournamentSubject.deleted())
}
