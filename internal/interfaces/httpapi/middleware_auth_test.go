package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/football-manager/internal/domain/user"
	"github.com/riskibarqy/football-manager/internal/platform/logging"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

type stubVerifier struct {
	principals map[string]user.Principal
	err        error
}

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if s.err != nil {
		return user.Principal{}, s.err
	}
	principal, ok := s.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "case insensitive scheme", header: "bearer  tok ", want: "tok"},
		{name: "missing", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcg==", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "blank token", header: "Bearer   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, usecase.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("bearerToken(%q)=%q want=%q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRequireAuth_InjectsPrincipal(t *testing.T) {
	verifier := stubVerifier{principals: map[string]user.Principal{"good": {UserID: "user-1"}}}
	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := requirePrincipal(r.Context())
		if err != nil {
			t.Errorf("principal missing: %v", err)
		}
		seen = p
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/squads", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if seen.UserID != "user-1" {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		verifier stubVerifier
		header   string
		want     int
	}{
		{name: "no header", verifier: stubVerifier{}, want: http.StatusUnauthorized},
		{name: "unknown token", verifier: stubVerifier{}, header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "verifier down", verifier: stubVerifier{err: usecase.ErrDependencyUnavailable}, header: "Bearer any", want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(tt.verifier, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/squads", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if called {
				t.Fatalf("next handler must not run")
			}
			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequestLogging_RecordsStatusAndBytes(t *testing.T) {
	var inner *statusRecorder
	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		inner, _ = w.(*statusRecorder)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/formations", nil))

	if inner == nil {
		t.Fatalf("expected handler to receive a statusRecorder")
	}
	if inner.status != http.StatusTeapot || inner.bytes != len("short") {
		t.Fatalf("unexpected recorder state: status=%d bytes=%d", inner.status, inner.bytes)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestRecoverPanic_RendersInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/squads", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Message != internalErrorMsg {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
}
