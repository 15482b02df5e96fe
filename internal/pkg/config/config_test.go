package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:5173" {
		t.Errorf("unexpected addr %q", cfg.Addr)
	}
	if cfg.Backend.URL != "http://localhost:5000/api" || cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("unexpected backend config %+v", cfg.Backend)
	}
	if cfg.Session.Driver != DriverFile || cfg.Session.Prefix != "taskdesk" {
		t.Errorf("unexpected session config %+v", cfg.Session)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_DRIVER":       "redis",
		"REDIS_ADDR":           "cache:6380",
		"BACKEND_TIMEOUT":      "3s",
		"CSRF_TRUSTED_ORIGINS": "localhost:5173,127.0.0.1:5173",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Driver != DriverRedis || cfg.Redis.Addr != "cache:6380" || cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.TrustedOrigins) != 2 {
		t.Errorf("expected two trusted origins, got %v", cfg.TrustedOrigins)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":  {"SESSION_DRIVER": "sqlite"},
		"backend": {"BACKEND_URL": "localhost:5000"},
		"timeout": {"BACKEND_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
