package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mindmate-backend/internal/handlers"
	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/repository"
	"mindmate-backend/internal/services"
	"mindmate-backend/internal/websocket"
)

func newTestRouter(t *testing.T, jwtAuth *middleware.JWTAuth) http.Handler {
	t.Helper()
	repo := repository.NewFileMoodRepo(filepath.Join(t.TempDir(), "data.json"), repository.PartitionByUser)
	replies := services.NewReplyService(nil, 0)
	hub := websocket.NewHub(nil)

	return New(
		jwtAuth,
		handlers.NewChatHandler(replies, 0),
		handlers.NewMoodHandler(repo, hub, jwtAuth == nil),
		handlers.NewSummaryHandler(repo, replies),
		handlers.NewGoogleFitHandler(services.NewGoogleFitService("", "", "")),
		hub,
		2,
		"*",
	)
}

func TestRoutes_Health(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response %d %s", rr.Code, rr.Body.String())
	}
}

func TestRoutes_ChatMountedTwice(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/chat", "/api/v1/chat"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"message":"hi"}`))
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
		var resp models.ChatResponse
		json.NewDecoder(rr.Body).Decode(&resp)
		if resp.Reply == "" {
			t.Errorf("%s: expected a fallback reply", path)
		}
	}
}

func TestRoutes_ChatRateLimited(t *testing.T) {
	r := newTestRouter(t, nil)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
		req.RemoteAddr = "10.0.0.2:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		last = rr.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("expected the third request to be limited, got %d", last)
	}
}

func TestRoutes_MoodRoundTrip(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mood?userId=alice", strings.NewReader(`{"mood":4,"stress":2}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("log: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mood?userId=alice", nil))
	var list models.MoodListResponse
	json.NewDecoder(rr.Body).Decode(&list)
	if len(list.Entries) != 1 || list.Entries[0].Mood != 4 {
		t.Errorf("unexpected entries %+v", list.Entries)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mood?userId=bob", nil))
	json.NewDecoder(rr.Body).Decode(&list)
	if len(list.Entries) != 0 {
		t.Errorf("bob should not see alice's entries, got %+v", list.Entries)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summary?userId=alice", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "last 1 entries") {
		t.Errorf("unexpected summary response %d %s", rr.Code, rr.Body.String())
	}
}

func TestRoutes_MoodRequiresUser(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mood", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestRoutes_TokenIdentity(t *testing.T) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	r := newTestRouter(t, jwtAuth)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mood?userId=alice", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("query userId must be ignored when tokens are required, got %d", rr.Code)
	}

	token, err := jwtAuth.GenerateAccessToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/mood", strings.NewReader(`{"mood":3,"stress":3,"userId":"mallory"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d: %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/mood", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var list models.MoodListResponse
	json.NewDecoder(rr.Body).Decode(&list)
	if len(list.Entries) != 1 {
		t.Errorf("entry should be stored under the token's user, got %+v", list.Entries)
	}
}

func TestRoutes_ProviderInfo(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/chat/provider", nil))

	var info models.ProviderInfo
	if err := json.NewDecoder(rr.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.APIKeyConfigured {
		t.Errorf("expected no provider configured, got %+v", info)
	}
}

func TestRoutes_GoogleFitTargetSteps(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/googlefit/target-steps", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"targetSteps":10000`) {
		t.Errorf("unexpected response %d %s", rr.Code, rr.Body.String())
	}
}

func TestRoutes_ChatIgnoresBadTokens(t *testing.T) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	r := newTestRouter(t, jwtAuth)

	expired, err := jwtAuth.GenerateAccessToken("alice", -time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	for i, token := range []string{expired, "garbage"} {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.RemoteAddr = "10.0.0.3:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("token %d: chat should not depend on identity, got %d: %s", i, rr.Code, rr.Body.String())
		}
	}

	for _, path := range []string{"/health", "/chat/provider"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200 with an expired token, got %d", path, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/mood", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("mood routes should still reject expired tokens, got %d", rr.Code)
	}
}
