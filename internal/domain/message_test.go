package domain

import (
	"testing"
	"time"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	a := NewMessage(RoleUser, "hola", now)
	b := NewMessage(RoleAssistant, "hi", now)

	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected generated ids")
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q twice", a.ID)
	}
	if a.Role != RoleUser || a.Text != "hola" {
		t.Fatalf("unexpected message %+v", a)
	}
	if a.Timestamp != now.UnixMilli() {
		t.Fatalf("expected timestamp %d, got %d", now.UnixMilli(), a.Timestamp)
	}
}
