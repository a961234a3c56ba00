package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mindmate-backend/internal/models"
	"mindmate-backend/internal/services"
)

type stubSummarizer struct {
	got []models.MoodEntry
	err error
}

func (s *stubSummarizer) Summary(ctx context.Context, entries []models.MoodEntry) (string, error) {
	s.got = entries
	if s.err != nil {
		return "", s.err
	}
	return "Overview: steady.", nil
}

func TestSummary_RequiresUser(t *testing.T) {
	h := NewSummaryHandler(newStubMoodRepo(), &stubSummarizer{})

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/summary", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestSummary_UsesLastTwelve(t *testing.T) {
	repo := newStubMoodRepo()
	for i := 0; i < 20; i++ {
		repo.data["alice"] = append(repo.data["alice"], models.MoodEntry{Mood: float64(i), Stress: 1})
	}
	sum := &stubSummarizer{}
	h := NewSummaryHandler(repo, sum)

	rr := httptest.NewRecorder()
	h.Get(rr, withUser(httptest.NewRequest(http.MethodGet, "/summary", nil), "alice"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(sum.got) != 12 || sum.got[0].Mood != 8 {
		t.Errorf("expected the last 12 entries, got %d starting at %v", len(sum.got), sum.got[0].Mood)
	}

	var resp models.SummaryResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Summary != "Overview: steady." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
}

func TestSummary_Error(t *testing.T) {
	h := NewSummaryHandler(newStubMoodRepo(), &stubSummarizer{err: context.DeadlineExceeded})

	rr := httptest.NewRecorder()
	h.Get(rr, withUser(httptest.NewRequest(http.MethodGet, "/summary", nil), "alice"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "LLM error") {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}

func TestSummary_FallbackIsRepeatable(t *testing.T) {
	repo := newStubMoodRepo()
	repo.data["alice"] = []models.MoodEntry{{Mood: 3, Stress: 2}, {Mood: 4, Stress: 1}}
	h := NewSummaryHandler(repo, services.NewReplyService(nil, 0))

	var bodies []string
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.Get(rr, withUser(httptest.NewRequest(http.MethodGet, "/summary", nil), "alice"))
		bodies = append(bodies, rr.Body.String())
	}

	if bodies[0] != bodies[1] {
		t.Error("summary without a provider should be identical across calls")
	}
	if !strings.Contains(bodies[0], "last 2 entries") {
		t.Errorf("expected the entry count in the fallback summary, got %s", bodies[0])
	}
}
