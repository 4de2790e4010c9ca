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
	if cfg.Addr() != "127.0.0.1:3000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.Store.Driver != "file" || cfg.Store.DataDir != "backend/data" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Sessions.Driver != "memory" {
		t.Fatalf("unexpected session driver %q", cfg.Sessions.Driver)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.SessionTTL)
	}
	if cfg.Search.Timeout != 10*time.Second {
		t.Fatalf("unexpected search timeout %s", cfg.Search.Timeout)
	}
	if cfg.TrustProxy {
		t.Fatalf("expected TRUST_PROXY to default to false")
	}
	if ranges, err := cfg.ProxyRanges(); err != nil || len(ranges) != 0 {
		t.Fatalf("expected no extra proxy ranges, got %v (%v)", ranges, err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "8081",
		"STORE_DRIVER":   "sqlite",
		"STORE_DSN":      "/tmp/portal.db",
		"SESSION_DRIVER": "redis",
		"SEARCH_TIMEOUT": "2s",
		"BCRYPT_COST":    "4",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "/tmp/portal.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Sessions.Driver != "redis" || cfg.Search.Timeout != 2*time.Second || cfg.BcryptCost != 4 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_TTL": "forever",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	if err == nil {
		t.Fatalf("expected error for default secret in production")
	}

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":            "production",
		"SESSION_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.SessionSecret)
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_TTL": "0s",
	}))
	if err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"TRUST_PROXY":     "true",
		"TRUSTED_PROXIES": "203.0.113.0/24, 2001:db8::/32",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ranges, err := cfg.ProxyRanges()
	if err != nil {
		t.Fatalf("proxy ranges: %v", err)
	}
	if !cfg.TrustProxy || len(ranges) != 2 || ranges[0].String() != "203.0.113.0/24" {
		t.Fatalf("unexpected proxy config: %v %v", cfg.TrustProxy, ranges)
	}
}

func TestLoad_RejectsBadProxyRange(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"TRUSTED_PROXIES": "not-a-cidr",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid TRUSTED_PROXIES")
	}
}
