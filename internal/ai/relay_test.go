package ai

import (
	"errors"
	"strings"
	"testing"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Generate(messages []Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestRelayRespond(t *testing.T) {
	p := &stubProvider{reply: "pong"}
	r := NewRelay(p)

	if got := r.Respond("ping"); got != "pong" {
		t.Errorf("Respond = %q, want pong", got)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}

func TestRelayRespondProviderError(t *testing.T) {
	r := NewRelay(&stubProvider{err: errors.New("model overloaded")})

	got := r.Respond("ping")
	if !strings.HasPrefix(got, "AI Error: ") || !strings.Contains(got, "model overloaded") {
		t.Errorf("Respond = %q, want the error surfaced as text", got)
	}
}

func TestRelayRespondUnconfigured(t *testing.T) {
	r := NewRelay(nil)

	if got := r.Respond("ping"); !strings.Contains(got, "not configured") {
		t.Errorf("Respond = %q, want the unconfigured notice", got)
	}
}

func TestRelayRespondRateLimited(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	r := NewRelay(p)

	// Burn through the burst; the limiter refills at one per second so the
	// next call inside the same instant must be refused.
	var limited bool
	for i := 0; i < 10; i++ {
		if strings.Contains(r.Respond("ping"), "too many requests") {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("limiter never kicked in")
	}
	if p.calls == 0 || p.calls > 4 {
		t.Errorf("provider called %d times, want within the burst", p.calls)
	}
}
