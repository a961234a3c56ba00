package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"mindmate-backend/internal/models"
)

// ErrEmptyCompletion is returned by a Completer when the provider answered
// without any text.
var ErrEmptyCompletion = errors.New("provider returned empty completion")

// CompletionRequest is one system-instruction + user-message exchange.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Completer is an external chat-completion provider.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
	Model() string
}

const (
	chatTemperature    = 0.7
	chatMaxTokens      = 200
	summaryTemperature = 0.5
	summaryMaxTokens   = 400
	summaryWindow      = 12
)

// ReplyService produces chat replies and mood summaries. The provider is fixed
// at construction; with no provider every call is served from the fallback text.
type ReplyService struct {
	completer Completer
	timeout   time.Duration
	pick      func(n int) int
}

func NewReplyService(completer Completer, timeout time.Duration) *ReplyService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ReplyService{
		completer: completer,
		timeout:   timeout,
		pick:      rand.Intn,
	}
}

// WithPicker replaces the random fallback selector.
func (s *ReplyService) WithPicker(pick func(n int) int) *ReplyService {
	s.pick = pick
	return s
}

func (s *ReplyService) Configured() bool {
	return s.completer != nil
}

// Reply answers a chat message. Provider failures degrade to a canned reply;
// the only error returned is the caller's own context error.
func (s *ReplyService) Reply(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.completer != nil {
		log.Printf("[%s] Attempting to generate reply for %q", s.completer.Name(), truncate(message, 50))
		reply, err := s.complete(ctx, CompletionRequest{
			System:      chatSystemPrompt,
			Prompt:      message,
			Temperature: chatTemperature,
			MaxTokens:   chatMaxTokens,
		})
		if err == nil {
			log.Printf("[%s] Reply received (%d chars)", s.completer.Name(), len(reply))
			return reply, nil
		}
		log.Printf("[%s] Reply failed, using fallback: %v", s.completer.Name(), err)
	}

	return s.fallbackReply(), nil
}

// Summary analyses the most recent mood entries.
func (s *ReplyService) Summary(ctx context.Context, entries []models.MoodEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.completer != nil {
		log.Printf("[%s] Generating summary for %d entries", s.completer.Name(), len(entries))
		summary, err := s.complete(ctx, CompletionRequest{
			System:      summarySystemPrompt,
			Prompt:      buildSummaryPrompt(entries),
			Temperature: summaryTemperature,
			MaxTokens:   summaryMaxTokens,
		})
		if err == nil {
			return summary, nil
		}
		log.Printf("[%s] Summary failed, using fallback: %v", s.completer.Name(), err)
	}

	return fallbackSummary(len(entries)), nil
}

// Info reports the provider resolved at startup.
func (s *ReplyService) Info() models.ProviderInfo {
	if s.completer == nil {
		return models.ProviderInfo{
			Provider: "Fallback",
			Model:    "deterministic",
			Status:   "disconnected",
		}
	}
	return models.ProviderInfo{
		Provider:         s.completer.Name(),
		Model:            s.completer.Model(),
		Status:           "connected",
		APIKeyConfigured: true,
	}
}

func (s *ReplyService) complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (s *ReplyService) fallbackReply() string {
	i := s.pick(len(fallbackReplies))
	if i < 0 || i >= len(fallbackReplies) {
		i = 0
	}
	return fallbackReplies[i]
}

func buildSummaryPrompt(entries []models.MoodEntry) string {
	if len(entries) > summaryWindow {
		entries = entries[len(entries)-summaryWindow:]
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("Entry %d: Mood %s/5, Stress %s/5", i+1, formatScore(e.Mood), formatScore(e.Stress))
	}
	return "Please analyze these mood entries:\n\n" + strings.Join(lines, "\n")
}

func formatScore(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
