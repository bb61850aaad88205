package entryhandlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"

	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	"github.com/leetrboo/leetrboo-api/app/shared"
)

// StreamEvents handles GET /api/competitions/{competitionID}/events.
// It holds the connection open and relays entry events for the requested
// competition as server-sent events until the client disconnects.
func (h *Handlers) StreamEvents(w http.ResponseWriter, r *http.Request) {
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

	// The feed carries entry details, so the same ownership rule as the list
	// endpoints applies before any subscription is opened.
	if err := h.service.VerifyOwnership(r.Context(), session, competitionID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Headers required for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()

	created, err := h.eventBus.Subscribe(ctx, entryevents.EntryCreated)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	updated, err := h.eventBus.Subscribe(ctx, entryevents.EntryUpdated)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	deleted, err := h.eventBus.Subscribe(ctx, entryevents.EntryDeleted)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "SSE connection established",
		slog.String("user_id", session.UserID),
		slog.Int64("competition_id", competitionID),
	)
	defer h.logger.InfoContext(ctx, "SSE connection closed",
		slog.String("user_id", session.UserID),
		slog.Int64("competition_id", competitionID),
	)

	flusher.Flush()

	wantID := strconv.FormatInt(competitionID, 10)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-created:
			if !h.relay(w, flusher, entryevents.EntryCreated, msg, ok, wantID) {
				return
			}
		case msg, ok := <-updated:
			if !h.relay(w, flusher, entryevents.EntryUpdated, msg, ok, wantID) {
				return
			}
		case msg, ok := <-deleted:
			if !h.relay(w, flusher, entryevents.EntryDeleted, msg, ok, wantID) {
				return
			}
		}
	}
}

// relay writes one event frame if the message belongs to the watched
// competition. It reports false when the subscription channel is closed.
func (h *Handlers) relay(w http.ResponseWriter, flusher http.Flusher, topic string, msg *message.Message, ok bool, wantID string) bool {
	if !ok {
		return false
	}
	msg.Ack()
	if msg.Metadata.Get(entryevents.MetadataCompetitionID) != wantID {
		return true
	}
	fmt.Fprintf(w, "event: %s\n", topic)
	fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
	flusher.Flush()
	return true
}
