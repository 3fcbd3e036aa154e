package ai

import (
	"log"

	"golang.org/x/time/rate"
)

// Relay is the stateless bridge between chat messages and the inference
// API: one message in, one reply out, no conversation memory, no retries.
type Relay struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRelay wraps a provider with a process-wide request cap.
func NewRelay(provider Provider) *Relay {
	return &Relay{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Respond forwards text as a single-turn request. It always returns
// something displayable: failures come back as a descriptive error string
// so the caller has content to post either way.
func (r *Relay) Respond(text string) string {
	if r.provider == nil {
		return "AI is not configured on this bot."
	}
	if !r.limiter.Allow() {
		return "I'm getting too many requests right now, try again in a moment."
	}

	reply, err := r.provider.Generate([]Message{{Role: "user", Content: text}})
	if err != nil {
		log.Printf("[ERR] AI generate failed: %v", err)
		return "AI Error: " + err.Error()
	}
	return reply
}
