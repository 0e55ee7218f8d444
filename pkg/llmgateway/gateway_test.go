package llmgateway

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...any)      {}
func (mockLogger) Info(ctx context.Context, msg string, keysAndValues ...any)  {}
func (mockLogger) Infof(ctx context.Context, format string, args ...any)       {}
func (mockLogger) Warn(ctx context.Context, msg string, keysAndValues ...any)  {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...any)       {}
func (mockLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...any)      {}

type mockProvider struct {
	calls int
	text  string
	err   error
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &Response{Text: m.text, Usage: &Usage{}}, nil
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }

func newTestGateway(t *testing.T, p Provider) (*Gateway, *int) {
	t.Helper()
	factoryCalls := 0
	g, err := New(Config{
		Factory: func(model string, streaming bool) (Provider, error) {
			factoryCalls++
			return p, nil
		},
		DefaultModel:  "mock-model",
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}, mockLogger{})
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}
	return g, &factoryCalls
}

func TestGatewayInvoke(t *testing.T) {
	ctx := context.Background()

	t.Run("successful generation", func(t *testing.T) {
		p := &mockProvider{text: "stay calm"}
		g, _ := newTestGateway(t, p)

		text, ok := g.Invoke(ctx, InvokeRequest{Prompt: "p", TaskType: TaskRespond})
		if !ok {
			t.Fatal("expected ok")
		}
		if text != "stay calm" {
			t.Errorf("unexpected text %q", text)
		}
		if p.calls != 1 {
			t.Errorf("expected 1 attempt, got %d", p.calls)
		}
	})

	t.Run("transient errors exhaust retries then fall back", func(t *testing.T) {
		p := &mockProvider{err: errors.New("503 service unavailable")}
		g, _ := newTestGateway(t, p)

		text, ok := g.Invoke(ctx, InvokeRequest{Prompt: "p", TaskType: TaskEvaluate})
		if ok {
			t.Fatal("expected fallback")
		}
		if p.calls != 3 {
			t.Errorf("expected exactly 3 attempts, got %d", p.calls)
		}
		if text != FallbackText(TaskEvaluate) {
			t.Errorf("expected task-type fallback, got %q", text)
		}
	})

	t.Run("non-transient errors fail straight to fallback", func(t *testing.T) {
		p := &mockProvider{err: errors.New("invalid api key")}
		g, _ := newTestGateway(t, p)

		text, ok := g.Invoke(ctx, InvokeRequest{Prompt: "p", TaskType: TaskRespond})
		if ok {
			t.Fatal("expected fallback")
		}
		if p.calls != 1 {
			t.Errorf("expected exactly 1 attempt, got %d", p.calls)
		}
		if text != FallbackText(TaskRespond) {
			t.Errorf("expected task-type fallback, got %q", text)
		}
	})

	t.Run("client is cached per model and streaming flag", func(t *testing.T) {
		p := &mockProvider{text: "x"}
		g, factoryCalls := newTestGateway(t, p)

		g.Invoke(ctx, InvokeRequest{Prompt: "a", TaskType: TaskRespond})
		g.Invoke(ctx, InvokeRequest{Prompt: "b", TaskType: TaskRespond})
		if *factoryCalls != 1 {
			t.Errorf("expected 1 factory call for same model, got %d", *factoryCalls)
		}

		g.Invoke(ctx, InvokeRequest{Prompt: "c", TaskType: TaskRespond, Model: "other-model"})
		if *factoryCalls != 2 {
			t.Errorf("expected a second client for a new model, got %d", *factoryCalls)
		}

		g.Invoke(ctx, InvokeRequest{Prompt: "d", TaskType: TaskRespond, Streaming: true})
		if *factoryCalls != 3 {
			t.Errorf("expected a third client for the streaming variant, got %d", *factoryCalls)
		}
	})

	t.Run("factory failure falls back", func(t *testing.T) {
		g, err := New(Config{
			Factory: func(model string, streaming bool) (Provider, error) {
				return nil, errors.New("bad credentials")
			},
			RetryBackoff: time.Millisecond,
		}, mockLogger{})
		if err != nil {
			t.Fatalf("failed to build gateway: %v", err)
		}

		text, ok := g.Invoke(ctx, InvokeRequest{Prompt: "p", TaskType: TaskTranslate})
		if ok {
			t.Fatal("expected fallback")
		}
		if text != FallbackText(TaskTranslate) {
			t.Errorf("expected translate fallback, got %q", text)
		}
	})

	t.Run("missing factory is rejected", func(t *testing.T) {
		if _, err := New(Config{}, mockLogger{}); !errors.Is(err, ErrNoProvidersConfigured) {
			t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("connection reset by peer"), true},
		{errors.New("HTTP 503 from upstream"), true},
		{errors.New("context deadline exceeded (timeout)"), true},
		{errors.New("service temporarily Unavailable"), true},
		{errors.New("invalid request"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isTransient(tc.err); got != tc.want {
			t.Errorf("isTransient(%v) = %t, want %t", tc.err, got, tc.want)
		}
	}
}
