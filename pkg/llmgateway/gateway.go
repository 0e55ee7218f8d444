package llmgateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"disaster-safety-assistant/pkg/log"
)

// Config defines the gateway configuration.
type Config struct {
	// Factory builds the provider client for a (model, streaming) pair.
	Factory Factory

	// DefaultModel is used when an InvokeRequest does not name a model.
	DefaultModel string

	// RetryAttempts is the total attempts per call, including the first.
	RetryAttempts int

	// RetryBackoff is the initial backoff; it doubles per retry.
	RetryBackoff time.Duration
}

// Factory builds a provider client for one (model, streaming) pair. The
// gateway caches the result, so construction cost is paid once.
type Factory func(model string, streaming bool) (Provider, error)

// InvokeRequest carries one gateway invocation.
type InvokeRequest struct {
	Prompt            string
	TaskType          TaskType
	SystemInstruction string
	Model             string // optional, defaults to Config.DefaultModel
	Streaming         bool
	Temperature       float64
	MaxTokens         int
}

// Gateway wraps one logical "generate text for this prompt" call with retry,
// backoff, and a deterministic per-task-type fallback. Invoke is total: it
// always returns text and never an error.
type Gateway struct {
	config Config
	l      log.Logger

	mu      sync.Mutex
	clients map[string]Provider
}

// New creates a Gateway. The factory is required.
func New(cfg Config, l log.Logger) (*Gateway, error) {
	if cfg.Factory == nil {
		return nil, ErrNoProvidersConfigured
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	return &Gateway{
		config:  cfg,
		l:       l,
		clients: make(map[string]Provider),
	}, nil
}

// Invoke generates text for the prompt. On transient errors it retries up to
// the configured attempts with exponential backoff; on any other error, or
// when retries are exhausted, it returns the fallback string for the task
// type. The second return value is false when the fallback was used.
func (g *Gateway) Invoke(ctx context.Context, req InvokeRequest) (string, bool) {
	provider, err := g.client(req.Model, req.Streaming)
	if err != nil {
		g.l.Errorf(ctx, "llmgateway: failed to build client: %v", err)
		return FallbackText(req.TaskType), false
	}

	genReq := &Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          []Message{{Role: "user", Text: req.Prompt}},
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	var lastErr error
	backoff := g.config.RetryBackoff

	for attempt := 1; attempt <= g.config.RetryAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				g.l.Warnf(ctx, "llmgateway: context done during backoff: %v", ctx.Err())
				return FallbackText(req.TaskType), false
			}
			backoff *= 2
		}

		resp, err := provider.GenerateContent(ctx, genReq)
		if err == nil {
			outputTokens := 0
			if resp.Usage != nil {
				outputTokens = resp.Usage.OutputTokens
			}
			g.l.Info(ctx, "llmgateway: generation successful",
				"provider", provider.Name(),
				"model", provider.Model(),
				"task_type", string(req.TaskType),
				"attempt", attempt,
				"output_tokens", outputTokens,
			)
			return resp.Text, true
		}

		lastErr = err
		if !isTransient(err) {
			g.l.Warnf(ctx, "llmgateway: non-transient error, using fallback for %s: %v", req.TaskType, err)
			return FallbackText(req.TaskType), false
		}
		g.l.Warnf(ctx, "llmgateway: transient error on attempt %d/%d: %v", attempt, g.config.RetryAttempts, err)
	}

	g.l.Errorf(ctx, "llmgateway: retries exhausted for %s: %v", req.TaskType, lastErr)
	return FallbackText(req.TaskType), false
}

// client returns the cached provider for (model, streaming), creating it on
// first use. The lock covers only the cache lookup, never the inference call.
func (g *Gateway) client(model string, streaming bool) (Provider, error) {
	if model == "" {
		model = g.config.DefaultModel
	}
	key := fmt.Sprintf("%s|%t", model, streaming)

	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.clients[key]; ok {
		return p, nil
	}
	p, err := g.config.Factory(model, streaming)
	if err != nil {
		return nil, err
	}
	g.clients[key] = p
	return p, nil
}
