package competitionhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leetrboo/leetrboo-api/app/shared"

	competitionservice "github.com/leetrboo/leetrboo-api/app/modules/competition/application"
	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// Handlers exposes the competition module over HTTP.
type Handlers struct {
	service competitionservice.Service
	logger  *slog.Logger
}

// NewHandlers creates competition HTTP handlers.
func NewHandlers(service competitionservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

type createCompetitionRequest struct {
	Name string `json:"name"`
}

type updateThemeRequest struct {
	Theme string `json:"theme"`
}

// CreateCompetition handles POST /api/competitions.
func (h *Handlers) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createCompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	competition, err := h.service.CreateCompetition(r.Context(), session, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, competition)
}

// ListCompetitions handles GET /api/competitions.
func (h *Handlers) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitions, err := h.service.ListCompetitions(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if competitions == nil {
		competitions = []*competitiondb.Competition{}
	}

	writeJSON(w, http.StatusOK, competitions)
}

// UpdateTheme handles PATCH /api/competitions/{competitionID}/theme.
func (h *Handlers) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitionID, err := strconv.ParseInt(chi.URLParam(r, "competitionID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid competition ID", http.StatusBadRequest)
		return
	}

	var req updateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateTheme(r.Context(), session, competitionID, competitiondb.Theme(req.Theme)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps domain errors onto status codes. Unknown errors are
// logged and answered with a generic message; raw backend text never reaches
// the client.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, competitionservice.ErrEmptyName),
		errors.Is(err, competitionservice.ErrInvalidTheme):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, competitionservice.ErrNoSession):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, competitionservice.ErrCompetitionNotFound):
		http.Error(w, "competition not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "Competition handler error", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
