package services

import (
	"errors"
	"testing"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
)

func newTestAuth() (*AuthService, *store.Users, *SessionManager) {
	users := store.NewUsers(store.NewMemoryStore())
	sessions := NewSessionManager(users, 24)
	return NewAuthService(nil, users, sessions), users, sessions
}

func TestAuth_EnsureMockUsers(t *testing.T) {
	auth, users, _ := newTestAuth()

	if err := auth.EnsureMockUsers(); err != nil {
		t.Fatalf("EnsureMockUsers() error = %v", err)
	}

	all := users.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(all))
	}

	first, _, err := users.Get("user-1")
	if err != nil {
		t.Fatalf("Get(user-1) error = %v", err)
	}
	if first.Username != "Pratik (Google)" {
		t.Errorf("Username = %q", first.Username)
	}
	if first.Points != 120 {
		t.Errorf("Points = %d, expected 120", first.Points)
	}
	if !first.HasBadge("first_project") {
		t.Errorf("Badges = %v, expected first_project", first.Badges)
	}
	if !first.Mock {
		t.Error("seeded user should be marked mock")
	}

	second, _, _ := users.Get("user-2")
	if second.Points != 85 {
		t.Errorf("user-2 Points = %d, expected 85", second.Points)
	}
}

func TestAuth_EnsureMockUsersIdempotent(t *testing.T) {
	auth, users, _ := newTestAuth()

	auth.EnsureMockUsers()
	users.Mutate("user-1", func(u *models.UserRecord) error {
		u.Points = 500
		return nil
	})

	if err := auth.EnsureMockUsers(); err != nil {
		t.Fatalf("EnsureMockUsers() error = %v", err)
	}

	rec, _, _ := users.Get("user-1")
	if rec.Points != 500 {
		t.Errorf("re-seeding should not reset existing data, Points = %d", rec.Points)
	}
	if len(users.All()) != 2 {
		t.Errorf("expected 2 users, got %d", len(users.All()))
	}
}

func TestAuth_LoginMock(t *testing.T) {
	auth, _, sessions := newTestAuth()
	auth.EnsureMockUsers()

	session, err := auth.LoginMock("user-1")
	if err != nil {
		t.Fatalf("LoginMock() error = %v", err)
	}
	if session.User.Username != "Pratik (Google)" {
		t.Errorf("Username = %q", session.User.Username)
	}
	if !sessions.Active("user-1") {
		t.Error("session should be active after login")
	}

	if _, err := auth.LoginMock("user-99"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuth_LoginExternal(t *testing.T) {
	auth, users, _ := newTestAuth()

	session, err := auth.LoginExternal(ExternalProfile{
		ID:      "google-123",
		Name:    "Ada",
		Email:   "ada@example.com",
		Picture: "https://example.com/ada.png",
	})
	if err != nil {
		t.Fatalf("LoginExternal() error = %v", err)
	}
	if session.User.ID != "google-123" {
		t.Errorf("ID = %q", session.User.ID)
	}

	rec, _, err := users.Get("google-123")
	if err != nil {
		t.Fatalf("external login should persist the record: %v", err)
	}
	if rec.Email != "ada@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}

	if _, err := auth.LoginExternal(ExternalProfile{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("empty profile should fail, got %v", err)
	}
}

func TestAuth_ExternalLoginKeepsPoints(t *testing.T) {
	auth, users, _ := newTestAuth()

	auth.LoginExternal(ExternalProfile{ID: "google-123", Name: "Ada"})
	users.Mutate("google-123", func(u *models.UserRecord) error {
		u.Points = 42
		return nil
	})

	session, err := auth.LoginExternal(ExternalProfile{ID: "google-123", Name: "Ada"})
	if err != nil {
		t.Fatalf("LoginExternal() error = %v", err)
	}
	if session.User.Points != 42 {
		t.Errorf("repeat login should keep points, got %d", session.User.Points)
	}
}
