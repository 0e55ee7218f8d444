package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
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
	text string
	err  error
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *llmgateway.Request) (*llmgateway.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llmgateway.Response{Text: m.text, Usage: &llmgateway.Usage{}}, nil
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }

type mockTranslator struct {
	out string
	err error
}

func (m *mockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	return m.out, m.err
}

func newTestClassifier(t *testing.T, p llmgateway.Provider, tr Translator) *IntentClassifier {
	t.Helper()
	gw, err := llmgateway.New(llmgateway.Config{
		Factory: func(model string, streaming bool) (llmgateway.Provider, error) {
			return p, nil
		},
		RetryAttempts: 1,
		RetryBackoff:  time.Millisecond,
	}, mockLogger{})
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}
	return New(gw, tr, mockLogger{})
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a plain JSON decision", func(t *testing.T) {
		p := &mockProvider{text: `{"intent":"shelter_inquiry","confidence":0.85,"urgency":"elevated","emergency_detected":false,"routing_target":"shelter_search","reasoning":"asks for a safe place"}`}
		c := newTestClassifier(t, p, &mockTranslator{})

		decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "where can I sleep tonight?"})
		if decision.Intent != "shelter_inquiry" {
			t.Errorf("unexpected intent %q", decision.Intent)
		}
		if decision.Confidence != 0.85 {
			t.Errorf("unexpected confidence %v", decision.Confidence)
		}
		if decision.RoutingTarget != "shelter_search" {
			t.Errorf("unexpected target %q", decision.RoutingTarget)
		}
	})

	t.Run("tolerates markdown code fences", func(t *testing.T) {
		p := &mockProvider{text: "```json\n{\"intent\":\"preparedness\",\"confidence\":0.9,\"urgency\":\"normal\",\"routing_target\":\"safety_guide\"}\n```"}
		c := newTestClassifier(t, p, &mockTranslator{})

		decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "how do I prepare"})
		if decision.Intent != "preparedness" || decision.RoutingTarget != "safety_guide" {
			t.Errorf("unexpected decision %+v", decision)
		}
	})

	t.Run("unparseable output yields the fallback decision", func(t *testing.T) {
		p := &mockProvider{text: "I think the user wants shelter info."}
		c := newTestClassifier(t, p, &mockTranslator{})

		decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "???"})
		if decision.Intent != FallbackIntent {
			t.Errorf("expected fallback intent, got %q", decision.Intent)
		}
		if decision.Confidence != FallbackConfidence {
			t.Errorf("expected fallback confidence, got %v", decision.Confidence)
		}
		if decision.RoutingTarget != FallbackTarget {
			t.Errorf("expected fallback target, got %q", decision.RoutingTarget)
		}
	})

	t.Run("gateway fallback yields the fallback decision", func(t *testing.T) {
		p := &mockProvider{err: errors.New("invalid api key")}
		c := newTestClassifier(t, p, &mockTranslator{})

		decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "hello"})
		if decision.Intent != FallbackIntent || decision.Reasoning != ReasonGatewayFallback {
			t.Errorf("unexpected decision %+v", decision)
		}
	})

	t.Run("out-of-range confidence is clamped", func(t *testing.T) {
		cases := []struct {
			raw  string
			want float64
		}{
			{`{"intent":"general_inquiry","confidence":1.3,"routing_target":"general"}`, 1},
			{`{"intent":"general_inquiry","confidence":-0.2,"routing_target":"general"}`, 0},
		}
		for _, tc := range cases {
			p := &mockProvider{text: tc.raw}
			c := newTestClassifier(t, p, &mockTranslator{})

			decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "hi"})
			if decision.Confidence != tc.want {
				t.Errorf("expected confidence %v for %s, got %v", tc.want, tc.raw, decision.Confidence)
			}
		}
	})

	t.Run("missing fields are defaulted", func(t *testing.T) {
		p := &mockProvider{text: `{"confidence":0.7}`}
		c := newTestClassifier(t, p, &mockTranslator{})

		decision := c.Classify(ctx, &model.ConversationState{NormalizedInput: "hm"})
		if decision.Intent != FallbackIntent || decision.RoutingTarget != FallbackTarget {
			t.Errorf("expected defaulted fields, got %+v", decision)
		}
	})
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()

	t.Run("translates foreign input", func(t *testing.T) {
		c := newTestClassifier(t, &mockProvider{}, &mockTranslator{out: "where is the shelter"})
		st := &model.ConversationState{TurnInput: "¿dónde está el refugio?", Language: "es"}

		c.Normalize(ctx, st)
		if st.NormalizedInput != "where is the shelter" {
			t.Errorf("unexpected normalized input %q", st.NormalizedInput)
		}
	})

	t.Run("english input passes through", func(t *testing.T) {
		tr := &mockTranslator{out: "should not be used"}
		c := newTestClassifier(t, &mockProvider{}, tr)
		st := &model.ConversationState{TurnInput: "hello", Language: "en"}

		c.Normalize(ctx, st)
		if st.NormalizedInput != "hello" {
			t.Errorf("unexpected normalized input %q", st.NormalizedInput)
		}
	})

	t.Run("translation failure keeps the original", func(t *testing.T) {
		c := newTestClassifier(t, &mockProvider{}, &mockTranslator{err: errors.New("provider down")})
		st := &model.ConversationState{TurnInput: "bonjour", Language: "fr"}

		c.Normalize(ctx, st)
		if st.NormalizedInput != "bonjour" {
			t.Errorf("expected original input, got %q", st.NormalizedInput)
		}
	})
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
