package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/config"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/handlers"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/repositories"
)

func newTestApp(t *testing.T) *application {
	t.Helper()
	var cfg config.Config
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := initializeApp(nil, repositories.MySQL, cfg, dependencies{}, logger)
	if err != nil {
		t.Fatalf("initialize app: %v", err)
	}
	return app
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp(t)
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.UserIDFromContext(r.Context())
	})
	h := app.authenticate(next)

	token, err := app.tokens.NewJWT("user-1", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expired, err := app.tokens.NewJWT("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
		userID string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "user-1"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if seen != tt.userID {
				t.Errorf("expected user %q, got %q", tt.userID, seen)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp(t)
	h := app.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("Connection") != "close" {
		t.Error("expected Connection: close")
	}
}

func TestRoutesPremiumNotShadowed(t *testing.T) {
	app := newTestApp(t)
	router := app.routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/offers/premium?city=atlantis", nil))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "city.invalid") {
		t.Fatalf("premium route not reached: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Frame-Options") != "deny" {
		t.Error("secure headers missing")
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)
	router := app.routes()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/offers"},
		{http.MethodPost, "/favorites"},
		{http.MethodGet, "/users/login"},
		{http.MethodDelete, "/comments/0b8a7c4e-7f5b-4d0b-9c55-2b2f4c8f1e11"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRoutesUnknownPath(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
