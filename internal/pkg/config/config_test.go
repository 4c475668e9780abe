package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != time.Hour || !cfg.Auth.CookieSecure {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.LoginMaxAttempts != 5 || cfg.Auth.LoginWindow != 15*time.Minute {
		t.Fatalf("unexpected limiter defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Transactions || cfg.Mongo.Database != "social_network" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Repair.Workers != 4 {
		t.Fatalf("expected 4 repair workers, got %d", cfg.Repair.Workers)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"TOKEN_TTL":          "30m",
		"COOKIE_SECURE":      "false",
		"CORS_ORIGINS":       "https://a.example,https://b.example",
		"MONGO_TRANSACTIONS": "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Auth.TokenTTL != 30*time.Minute || cfg.Auth.CookieSecure {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if !cfg.Mongo.Transactions {
		t.Fatalf("expected transactions enabled")
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"zero ttl":       {"JWT_SECRET": "s", "TOKEN_TTL": "0s"},
		"no workers":     {"JWT_SECRET": "s", "REPAIR_WORKERS": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
