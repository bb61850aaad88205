package joinhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	joinservice "github.com/leetrboo/leetrboo-api/app/modules/join/application"
)

// Handlers exposes the participant join workflow over HTTP. These routes are
// public and sit behind the IP rate limiter instead of the session middleware.
type Handlers struct {
	service joinservice.Service
	logger  *slog.Logger
}

// NewHandlers creates join HTTP handlers.
func NewHandlers(service joinservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

type submitCodeRequest struct {
	Code string `json:"code"`
}

type submitDetailsRequest struct {
	PlayerName string `json:"player_name"`
	VideoURL   string `json:"video_url"`
}

// Start handles POST /api/join.
func (h *Handlers) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Start(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /api/join/{token}.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SubmitCode handles POST /api/join/{token}/code.
func (h *Handlers) SubmitCode(w http.ResponseWriter, r *http.Request) {
	var req submitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SubmitCode(r.Context(), chi.URLParam(r, "token"), req.Code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Back handles POST /api/join/{token}/back.
func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Back(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SubmitDetails handles POST /api/join/{token}/details.
func (h *Handlers) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	var req submitDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SubmitDetails(r.Context(), chi.URLParam(r, "token"), req.PlayerName, req.VideoURL)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Retry handles POST /api/join/{token}/retry.
func (h *Handlers) Retry(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Retry(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Cancel handles DELETE /api/join/{token}.
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Cancel(r.Context(), chi.URLParam(r, "token")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, joinservice.ErrSessionNotFound):
		http.Error(w, "join session not found", http.StatusNotFound)
	case errors.Is(err, joinservice.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, joinservice.ErrEmptyCode),
		errors.Is(err, entryservice.ErrEmptyPlayerName),
		errors.Is(err, entryservice.ErrInvalidVideoURL):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(r.Context(), "Join handler error", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
