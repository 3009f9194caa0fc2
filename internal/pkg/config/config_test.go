package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": testSecret,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.JWT.TTL)
	}
	if cfg.JWT.CookieName != "jwt" {
		t.Errorf("expected cookie jwt, got %q", cfg.JWT.CookieName)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.RatingWorkers != 4 {
		t.Errorf("expected 4 rating workers, got %d", cfg.RatingWorkers)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled by default")
	}
	if cfg.Redis.PoolSize != 10 || cfg.Redis.OpTimeout != 500*time.Millisecond || cfg.Redis.TLS {
		t.Errorf("unexpected redis defaults %+v", cfg.Redis)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":    testSecret,
		"JWT_TTL":       "90m",
		"ENV":           "Production",
		"REDIS_ENABLED": "false",
		"MONGO_DB":      "bookings_test",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWT.TTL != 90*time.Minute {
		t.Errorf("expected 90m ttl, got %s", cfg.JWT.TTL)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}
	if cfg.Mongo.Database != "bookings_test" {
		t.Errorf("unexpected database %q", cfg.Mongo.Database)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "short",
	}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}
