package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOMAIN", "social.example")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("FEDERATION_INBOXES", " https://a.example/inbox, ,https://b.example/inbox ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FederationActor != "https://social.example/ap/actor" {
		t.Fatalf("actor: want=%q got=%q", "https://social.example/ap/actor", cfg.FederationActor)
	}
	if cfg.FederationTimeout != 10*time.Second {
		t.Fatalf("timeout: want=10s got=%s", cfg.FederationTimeout)
	}
	if len(cfg.FederationInboxes) != 2 || cfg.FederationInboxes[1] != "https://b.example/inbox" {
		t.Fatalf("inboxes: got=%v", cfg.FederationInboxes)
	}
}

func TestLoadRequiresDomain(t *testing.T) {
	t.Setenv("DOMAIN", "")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatalf("Load: expected error when DOMAIN is empty")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("DOMAIN", "social.example")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("FEDERATION_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("Load: expected error for invalid FEDERATION_TIMEOUT")
	}
}
