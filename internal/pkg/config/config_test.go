package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.ChangeFeed != FeedMongo || cfg.Mongo.Database != "response_dashboard" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Ticks.GPS != 2*time.Second || cfg.Ticks.AmbulanceETA != 3*time.Second ||
		cfg.Ticks.PatientETA != 5*time.Second || cfg.Ticks.Notifications != 8*time.Second {
		t.Fatalf("unexpected tick defaults: %+v", cfg.Ticks)
	}
	if len(cfg.Stream.AllowedOrigins) != 1 || cfg.Stream.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.Stream.AllowedOrigins)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"JWT_SECRET":         "s3cret",
		"CHANGE_FEED":        "nats",
		"NATS_URL":           "nats://broker:4222",
		"REDIS_PASSWORD":     "cache-pass",
		"TICK_GPS":           "500ms",
		"WS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.ChangeFeed != FeedNATS || cfg.NATS.URL != "nats://broker:4222" {
		t.Fatalf("unexpected feed config: %+v", cfg)
	}
	if cfg.Redis.Password != "cache-pass" {
		t.Fatalf("expected redis password override, got %q", cfg.Redis.Password)
	}
	if cfg.Ticks.GPS != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", cfg.Ticks.GPS)
	}
	if len(cfg.Stream.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.Stream.AllowedOrigins)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown feed":           {"CHANGE_FEED": "kafka"},
		"missing secret in prod": {"ENV": "production"},
		"no workers":             {"DISPATCH_WORKERS": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
