package sse

import (
	"testing"
	"time"

	"github.com/jerrk000/teamify/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "roster-update",
			data:      `{"revision":2}`,
			expected:  "event: roster-update\ndata: {\"revision\":2}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "update",
			data:      "a\nb\nc",
			expected:  "event: update\ndata: a\ndata: b\ndata: c\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	if !hub.Register(client) {
		t.Fatal("Register() = false on a running hub")
	}

	time.Sleep(10 * time.Millisecond)
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("roster-update", "data")

	select {
	case msg := <-client.send:
		expected := "event: roster-update\ndata: data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel still open after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(hub), NewClient(hub), NewClient(hub)}
	for _, c := range clients {
		hub.Register(c)
	}
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastEvent("update", "data")

	for i, client := range clients {
		select {
		case msg := <-client.send:
			expected := "event: update\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_ClosedHubRejectsClients(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()

	hub.Close()
	hub.Close() // second close is a no-op

	client := NewClient(hub)
	if hub.Register(client) {
		t.Error("Register() = true on a closed hub")
	}
	hub.Unregister(client) // must not block
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Close()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed send channel")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client was not disconnected")
	}
}

func TestNewClient_UniqueViewerIDs(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	a, b := NewClient(hub), NewClient(hub)
	if a.ViewerID() == "" || a.ViewerID() == b.ViewerID() {
		t.Errorf("viewer ids %q and %q should be distinct and non-empty", a.ViewerID(), b.ViewerID())
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub("ABC123")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}
	if hub2 := manager.GetOrCreateHub("ABC123"); hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same code")
	}
	if hub3 := manager.GetOrCreateHub("XYZ789"); hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different code")
	}
	if manager.HubCount() != 2 {
		t.Errorf("HubCount() = %d, want 2", manager.HubCount())
	}
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	if hub := manager.GetHub("NOTEXIST"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("ABC123")
	if got := manager.GetHub("ABC123"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("ABC123")
	manager.RemoveHub("ABC123")

	if manager.GetHub("ABC123") != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// removing a missing hub is a no-op
	manager.RemoveHub("NOTEXIST")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("EMPTY1")

	active := manager.GetOrCreateHub("ACTIVE")
	active.Register(NewClient(active))
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("EMPTY1") != nil {
		t.Error("Empty hub still exists after cleanup")
	}
	if manager.GetHub("ACTIVE") == nil {
		t.Error("Active hub was removed during cleanup")
	}
}
