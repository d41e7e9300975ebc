package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/football-manager/internal/config"
	"github.com/riskibarqy/football-manager/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/football-manager/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/football-manager/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "football-manager-test",
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		LineupCheckWorkers: 2,
		AuthProvider:       config.AuthProviderJWT,
		JWTSecret:          "0123456789abcdef-test",
	}
}

func TestNew_MemoryStorageServesHealthz(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/squads", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestBuildVerifier(t *testing.T) {
	cfg := memoryConfig()

	v, err := buildVerifier(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build jwt verifier: %v", err)
	}
	if _, ok := v.(*jwtauth.Verifier); !ok {
		t.Fatalf("expected jwt verifier, got %T", v)
	}

	cfg.AuthProvider = config.AuthProviderAnubis
	cfg.AnubisBaseURL = "http://anubis.internal"
	v, err = buildVerifier(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build anubis verifier: %v", err)
	}
	if _, ok := v.(*anubis.Client); !ok {
		t.Fatalf("expected anubis client, got %T", v)
	}

	cfg.AuthProvider = "ldap"
	if _, err := buildVerifier(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}

	cfg.AuthProvider = config.AuthProviderJWT
	cfg.JWTSecret = "short"
	if _, err := buildVerifier(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for short jwt secret")
	}
}
