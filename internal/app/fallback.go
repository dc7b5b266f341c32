package app

import (
	"context"
	"log"
	"strings"
	"time"

	"mellow-ai/internal/model"
	"mellow-ai/internal/responder"
)

// GenerationResult is the outcome of one fallback-chain link. Empty text is
// a miss, not a failure; provider failures travel on the error return. The
// chain treats both the same way: log and try the next link.
type GenerationResult struct {
	Text string
}

// Hit reports whether the link produced a usable reply.
func (r GenerationResult) Hit() bool {
	return strings.TrimSpace(r.Text) != ""
}

// Generator is one LLM-backed response strategy. Available must be cheap; it
// reports configuration state (e.g. a missing credential), never errors.
type Generator interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, message string, history []model.Conversation) (GenerationResult, error)
}

// FallbackChain tries its generators in strict priority order and falls back
// to the rule-based responder, which cannot fail. Respond is therefore total:
// every call returns a non-empty reply.
type FallbackChain struct {
	generators []Generator
	timeout    time.Duration
}

func NewFallbackChain(timeout time.Duration, generators ...Generator) *FallbackChain {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FallbackChain{generators: generators, timeout: timeout}
}

// Respond returns the first generator hit, or the rule-based reply when every
// generator is unavailable, misses, errors, or times out. History is ordered
// newest-first.
func (c *FallbackChain) Respond(ctx context.Context, message string, history []model.Conversation) string {
	for _, g := range c.generators {
		if !g.Available() {
			log.Printf("%s not available, trying next responder", g.Name())
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		result, err := g.Generate(callCtx, message, history)
		cancel()
		if err != nil {
			log.Printf("%s generate failed: %v, trying next responder", g.Name(), err)
			continue
		}
		if !result.Hit() {
			log.Printf("%s returned empty response, trying next responder", g.Name())
			continue
		}
		return strings.TrimSpace(result.Text)
	}

	return responder.Respond(message, history)
}
