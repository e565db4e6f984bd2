package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var requestJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	newsService        *usecase.NewsService
	tournamentService  *usecase.TournamentService
	teamService        *usecase.TeamService
	leaderboardService *usecase.LeaderboardService
	predictionService  *usecase.PredictionService
	homeService        *usecase.HomeService
	logger             *logging.Logger
}

func NewHandler(
	newsService *usecase.NewsService,
	tournamentService *usecase.TournamentService,
	teamService *usecase.TeamService,
	leaderboardService *usecase.LeaderboardService,
	predictionService *usecase.PredictionService,
	homeService *usecase.HomeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		newsService:        newsService,
		tournamentService:  tournamentService,
		teamService:        teamService,
		leaderboardService: leaderboardService,
		predictionService:  predictionService,
		homeService:        homeService,
		logger:             logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// subject names a resource in client-facing messages.
type subject struct {
	noun  string
	label string
}

var (
	newsSubject        = subject{noun: "news article", label: "News article"}
	tournamentSubject  = subject{noun: "tournament", label: "Tournament"}
	teamSubject        = subject{noun: "team", label: "Team"}
	leaderboardSubject = subject{noun: "leaderboard", label: "Leaderboard"}
	predictionSubject  = subject{noun: "prediction", label: "Prediction"}
	homeSubject        = subject{noun: "home feed", label: "Home feed"}
)

func (s subject) deleted() messageBody {
	return messageBody{Message: s.label + " deleted successfully"}
}

// fail logs err and writes the error response. action is a gerund such as
// "creating" and only shows up in server error messages.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, s subject, action string, err error, kv ...any) {
	mapped := mapError(ctx, err)

	var message string
	switch mapped.HTTPStatus {
	case http.StatusBadRequest:
		if _, ok := validation.FromError(err); ok {
			message = "Invalid " + s.noun + " data"
		}
	case http.StatusNotFound:
		message = s.label + " not found"
	case http.StatusServiceUnavailable:
		message = "Storage temporarily unavailable while " + action + " " + s.noun
	case http.StatusInternalServerError:
		message = "Error " + action + " " + s.noun
	}

	args := append([]any{"action", action, "resource", s.noun, "status", mapped.HTTPStatus, "error", err}, kv...)
	if principal, ok := principalFromContext(ctx); ok {
		args = append(args, "actor", principal.Email)
	}
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", args...)
	} else {
		h.logger.WarnContext(ctx, "request rejected", args...)
	}
	writeError(ctx, w, err, message)
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored; an empty,
// oversized or malformed body is invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return bodyError(fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
		}
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return bodyError("is required")
	}
	if err := requestJSON.Unmarshal(data, dst); err != nil {
		return bodyError("must be a valid JSON object of the expected shape")
	}
	return nil
}

func bodyError(message string) error {
	errs := validation.Errors{}
	errs.Add(validation.BodyField, message)
	return fmt.Errorf("%w: %w", usecase.ErrInvalidInput, errs)
}

// parseLimit returns 0 when the parameter is absent.
func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return v, nil
}
