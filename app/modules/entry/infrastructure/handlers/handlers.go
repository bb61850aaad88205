package entryhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leetrboo/leetrboo-api/app/shared"

	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// Handlers exposes the entry module's organizer-facing operations over HTTP.
type Handlers struct {
	service  entryservice.Service
	eventBus shared.EventBus
	logger   *slog.Logger
}

// NewHandlers creates entry HTTP handlers.
func NewHandlers(service entryservice.Service, eventBus shared.EventBus, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, eventBus: eventBus, logger: logger}
}

type addEntryRequest struct {
	PlayerName string `json:"player_name"`
	VideoURL   string `json:"video_url"`
}

type updateEntryRequest struct {
	Score    *int    `json:"score"`
	Comments *string `json:"comments"`
}

// AddEntry handles POST /api/competitions/{competitionID}/entries.
func (h *Handlers) AddEntry(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitionID, err := competitionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.AddEntry(r.Context(), session, competitionID, req.PlayerName, req.VideoURL)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/competitions/{competitionID}/entries.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitionID, err := competitionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.service.ListEntries(r.Context(), session, competitionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*entrydb.ParticipantEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

// UpdateEntry handles PATCH /api/entries/{entryID}.
func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Score == nil && req.Comments == nil {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), session, entryID, &entrydb.EntryUpdate{
		Score:    req.Score,
		Comments: req.Comments,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/entries/{entryID}.
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteEntry(r.Context(), session, entryID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportScoreboard handles GET /api/competitions/{competitionID}/export.
func (h *Handlers) ExportScoreboard(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitionID, err := competitionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.service.ExportScoreboard(r.Context(), session, competitionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scoreboard-%d.xlsx", competitionID))
	_, _ = w.Write(data)
}

// ScoreChart handles GET /api/competitions/{competitionID}/chart.
func (h *Handlers) ScoreChart(w http.ResponseWriter, r *http.Request) {
	session, ok := shared.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	competitionID, err := competitionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.service.RenderScoreChart(r.Context(), session, competitionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func competitionIDParam(r *http.Request) (int64, error) {
	competitionID, err := strconv.ParseInt(chi.URLParam(r, "competitionID"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid competition ID")
	}
	return competitionID, nil
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entryservice.ErrEmptyPlayerName),
		errors.Is(err, entryservice.ErrInvalidVideoURL),
		errors.Is(err, entryservice.ErrFieldTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entryservice.ErrAlreadyJoined):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entryservice.ErrNoSession):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, entryservice.ErrEntryNotFound),
		errors.Is(err, entryservice.ErrCompetitionNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "Entry handler error", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
