package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"brandforge/internal/notify"
)

// ActivityFeed delivers generation events published by this and other
// service instances until ctx is cancelled.
type ActivityFeed interface {
	Subscribe(ctx context.Context, handler func(notify.Event)) error
}

// Activity streams generation events to the client as server-sent events.
// An optional userId query narrows the stream to one user's activity. The
// stream ends when the client disconnects.
func (a *App) Activity(w http.ResponseWriter, r *http.Request) {
	if a.Feed == nil {
		a.error(w, http.StatusServiceUnavailable, "activity_unavailable", "activity feed is not configured")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := a.Feed.Subscribe(r.Context(), func(event notify.Event) {
		if userID != "" && event.UserID != userID {
			return
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	})
	if err != nil && r.Context().Err() == nil {
		a.Logger.Warn().Err(err).Msg("activity stream ended")
	}
}
