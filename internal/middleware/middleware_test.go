package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lol-tracker/internal/auth"
	"lol-tracker/internal/config"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(&config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTExpiration: time.Hour,
	})
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("request id = %q, header = %q", seen, rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc-123" {
		t.Errorf("generated request id = %q", seen)
	}
}

func TestAuthenticate(t *testing.T) {
	issuer := newIssuer()
	token, err := issuer.Issue(&domain.User{ID: 7, Username: "faker", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		wantOK bool
	}{
		{"valid", "Bearer " + token, true},
		{"lowercase scheme", "bearer " + token, true},
		{"missing", "", false},
		{"garbage", "Bearer not-a-jwt", false},
		{"wrong scheme", "Basic " + token, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Principal
			var ok bool
			h := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = PrincipalFrom(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req = req.WithContext(log.Logger.WithContext(req.Context()))
			h.ServeHTTP(httptest.NewRecorder(), req)

			if ok != tt.wantOK {
				t.Fatalf("principal present = %v, want %v", ok, tt.wantOK)
			}
			if ok && (got.UserID != 7 || got.Username != "faker" || !got.IsAdmin()) {
				t.Errorf("principal = %+v", got)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	reached := false
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/boards", nil))
	if rec.Code != http.StatusUnauthorized || reached {
		t.Errorf("anonymous request: code = %d, reached = %v", rec.Code, reached)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/boards", nil)
	req = req.WithContext(WithPrincipal(req.Context(), domain.Principal{UserID: 1}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !reached {
		t.Error("authenticated request did not reach handler")
	}
}
