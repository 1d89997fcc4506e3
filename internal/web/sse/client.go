package sse

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jerrk000/teamify/internal/model"
)

const (
	// time between keepalive comments
	pingPeriod = 30 * time.Second

	sendBufferSize = 64
)

// Client is one connected event stream
type Client struct {
	hub         *Hub
	viewerID    string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client with a fresh viewer id
func NewClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		viewerID:    uuid.NewString(),
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ViewerID identifies the connection in logs
func (c *Client) ViewerID() string {
	return c.viewerID
}

// ServeSSE streams a hub's events to w until the request ends or the hub closes
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, code model.RosterCode) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(hub)
	if !hub.Register(client) {
		http.Error(w, "Roster is gone", http.StatusGone)
		return
	}
	defer hub.Unregister(client)

	_, _ = w.Write(formatSSEMessage("connected", `{"roster_code":"`+string(code)+`"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
