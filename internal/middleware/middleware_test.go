package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestIdentity_QueryParamWithoutJWT(t *testing.T) {
	h := Identity(nil)(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/mood?userId=alice", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Body.String() != "alice" {
		t.Fatalf("expected user id alice, got %q", rr.Body.String())
	}
}

func TestIdentity_BearerToken(t *testing.T) {
	auth := NewJWTAuth("secret")
	token, err := auth.GenerateAccessToken("bob", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	h := Identity(auth)(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/mood?userId=mallory", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "bob" {
		t.Fatalf("expected token identity bob to win over query param, got %q", rr.Body.String())
	}
}

func TestIdentity_QueryIgnoredWhenJWTConfigured(t *testing.T) {
	h := Identity(NewJWTAuth("secret"))(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/mood?userId=mallory", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Body.String() != "" {
		t.Fatalf("expected no identity, got %q", rr.Body.String())
	}
}

func TestIdentity_RejectsBadToken(t *testing.T) {
	other, _ := NewJWTAuth("other-secret").GenerateAccessToken("bob", time.Minute)
	h := Identity(NewJWTAuth("secret"))(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/mood", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestIdentity_ExpiredToken(t *testing.T) {
	auth := NewJWTAuth("secret")
	token, _ := auth.GenerateAccessToken("bob", -time.Minute)
	h := Identity(auth)(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence: %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected other client to be allowed, got %d", rr.Code)
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if ok, _ := rl.allow("ip"); !ok {
		t.Fatalf("first request should be allowed")
	}
	if ok, _ := rl.allow("ip"); ok {
		t.Fatalf("second request in window should be blocked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := rl.allow("ip"); !ok {
		t.Fatalf("request in new window should be allowed")
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get(RequestIDHeader) != "abc" {
		t.Fatalf("expected incoming request id to be echoed, got %q", rr.Header().Get(RequestIDHeader))
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/chat", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if called {
		t.Fatalf("preflight should not reach the handler")
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin header")
	}
}
