package services

import (
	"testing"
	"time"
)

func TestHub_NewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("NewHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestHub_Subscribe(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe("client1")
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", hub.ClientCount())
	}

	ch2 := hub.Subscribe("client2")
	if ch2 == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", hub.ClientCount())
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()

	hub.Subscribe("client1")
	hub.Subscribe("client2")

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client2")
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestHub_PublishChange(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe("client1")

	hub.PublishChange("projects", "p1", "update")

	select {
	case received := <-ch:
		if received.Type != EventChange {
			t.Errorf("Type = %q, expected %q", received.Type, EventChange)
		}
		if received.Collection != "projects" {
			t.Errorf("Collection = %q, expected %q", received.Collection, "projects")
		}
		if received.Key != "p1" {
			t.Errorf("Key = %q, expected %q", received.Key, "p1")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestHub_PublishNavigateMultipleClients(t *testing.T) {
	hub := NewHub()

	ch1 := hub.Subscribe("client1")
	ch2 := hub.Subscribe("client2")

	hub.PublishNavigate(ViewPortfolio, "p1")

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Type != EventNavigate {
				t.Errorf("client%d: Type = %q, expected %q", i+1, received.Type, EventNavigate)
			}
			if received.View != ViewPortfolio {
				t.Errorf("client%d: View = %q", i+1, received.View)
			}
			if received.ProjectID != "p1" {
				t.Errorf("client%d: ProjectID = %q, expected p1", i+1, received.ProjectID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client%d: timed out waiting for event", i+1)
		}
	}
}

func TestHub_NonBlockingPublish(t *testing.T) {
	hub := NewHub()

	hub.Subscribe("slow_client")

	for i := 0; i < 200; i++ {
		hub.PublishChange("projects", "p1", "update")
	}
}
