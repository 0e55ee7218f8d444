package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"disaster-safety-assistant/internal/capability"
	"disaster-safety-assistant/internal/memory"
	"disaster-safety-assistant/internal/memory/checkpoint"
	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/internal/reflection"
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

type mockClassifier struct {
	decision model.IntentDecision
}

func (m *mockClassifier) Classify(ctx context.Context, state *model.ConversationState) model.IntentDecision {
	return m.decision
}

func (m *mockClassifier) Normalize(ctx context.Context, state *model.ConversationState) {
	state.NormalizedInput = state.TurnInput
}

type mockCapability struct {
	name     string
	draft    string
	err      error
	executed int
}

func (m *mockCapability) Name() string { return m.name }

func (m *mockCapability) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	m.executed++
	if m.err != nil {
		return model.PartialState{}, m.err
	}
	return model.PartialState{DraftResponse: m.draft, CurrentTaskType: m.name}, nil
}

// mockGate mirrors the real gate's termination guarantee: it approves once
// the reflection budget is spent, unless alwaysReject disables that.
type mockGate struct {
	rejections   int
	alwaysReject bool
	evaluated    int
}

func (m *mockGate) Evaluate(ctx context.Context, state *model.ConversationState) reflection.Verdict {
	m.evaluated++
	if m.alwaysReject {
		return reflection.Verdict{Approved: false, TargetCapability: state.CurrentTaskType, Feedback: "again"}
	}
	if state.ReflectionCount >= model.MaxReflections || m.rejections <= 0 {
		return reflection.Verdict{Approved: true}
	}
	m.rejections--
	return reflection.Verdict{Approved: false, TargetCapability: state.CurrentTaskType, Feedback: "needs work"}
}

type mockLongTerm struct {
	appends int
	records []model.MemoryRecord
}

func (m *mockLongTerm) Append(ctx context.Context, deviceID, sessionID string, rec model.MemoryRecord) error {
	m.appends++
	m.records = append(m.records, rec)
	return nil
}

func (m *mockLongTerm) List(ctx context.Context, deviceID, sessionID string) ([]model.MemoryRecord, error) {
	return m.records, nil
}

type mockTranslator struct {
	out   string
	err   error
	calls int
}

func (m *mockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.out, nil
}

type failingLocationResolver struct{}

func (failingLocationResolver) Resolve(ctx context.Context, raw string) (string, error) {
	return "", errors.New("geocoder down")
}

type slowLocationResolver struct{ delay time.Duration }

func (s slowLocationResolver) Resolve(ctx context.Context, raw string) (string, error) {
	time.Sleep(s.delay)
	return raw, nil
}

type slowDeviceStatus struct{ delay time.Duration }

func (s slowDeviceStatus) Status(ctx context.Context, deviceID string) (string, error) {
	time.Sleep(s.delay)
	return "battery_ok", nil
}

type slowLongTerm struct{ delay time.Duration }

func (s slowLongTerm) Append(ctx context.Context, deviceID, sessionID string, rec model.MemoryRecord) error {
	return nil
}

func (s slowLongTerm) List(ctx context.Context, deviceID, sessionID string) ([]model.MemoryRecord, error) {
	time.Sleep(s.delay)
	return nil, nil
}

type engineFixture struct {
	engine     *Engine
	classifier *mockClassifier
	gate       *mockGate
	longTerm   *mockLongTerm
	translator *mockTranslator
	caps       map[string]*mockCapability
}

func newFixture(cfg Config, decision model.IntentDecision, capNames ...string) *engineFixture {
	f := &engineFixture{
		classifier: &mockClassifier{decision: decision},
		gate:       &mockGate{},
		longTerm:   &mockLongTerm{},
		translator: &mockTranslator{out: "translated"},
		caps:       make(map[string]*mockCapability),
	}

	registry := capability.NewRegistry()
	registry.Register(capability.NewFallback())
	for _, name := range capNames {
		c := &mockCapability{name: name, draft: "draft from " + name}
		f.caps[name] = c
		registry.Register(c)
	}

	checkpoints := checkpoint.New(0, 0)
	coordinator := memory.New(checkpoints, f.longTerm, mockLogger{})

	f.engine = New(
		cfg,
		f.classifier,
		registry,
		f.gate,
		coordinator,
		checkpoints,
		PassthroughLocationResolver{},
		StaticDeviceStatus{Value: "battery_ok"},
		f.translator,
		mockLogger{},
	)
	return f
}

func newState() *model.ConversationState {
	return &model.ConversationState{
		TurnInput: "is the flood near me over?",
		DeviceID:  "dev-1",
		SessionID: "sess-1",
		ThreadID:  model.BuildThreadID("dev-1", "sess-1"),
	}
}

func TestEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Intent:        "disaster_inquiry",
			Confidence:    0.9,
			RoutingTarget: "disaster_info",
		}, "disaster_info")

		st, err := f.engine.Run(ctx, newState())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.FinalResponse != "draft from disaster_info" {
			t.Errorf("unexpected final response %q", st.FinalResponse)
		}
		if f.caps["disaster_info"].executed != 1 {
			t.Errorf("expected 1 execution, got %d", f.caps["disaster_info"].executed)
		}
		if f.longTerm.appends != 2 {
			t.Errorf("expected user+assistant persisted, got %d appends", f.longTerm.appends)
		}
	})

	t.Run("revision loop is bounded by the reflection budget", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Intent:        "preparedness",
			Confidence:    0.9,
			RoutingTarget: "safety_guide",
		}, "safety_guide")
		f.gate.rejections = 5 // more than the budget allows

		st, err := f.engine.Run(ctx, newState())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.ReflectionCount != model.MaxReflections {
			t.Errorf("expected %d reflections, got %d", model.MaxReflections, st.ReflectionCount)
		}
		// Initial dispatch plus one re-dispatch per reflection.
		if got := f.caps["safety_guide"].executed; got != model.MaxReflections+1 {
			t.Errorf("expected %d executions, got %d", model.MaxReflections+1, got)
		}
		if st.FinalResponse == "" {
			t.Error("expected a final response after forced approval")
		}
	})

	t.Run("capability failure recovers with an apology", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Intent:        "general_inquiry",
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")
		f.caps["general"].err = errors.New("prompt template exploded")

		st, err := f.engine.Run(ctx, newState())
		if err != nil {
			t.Fatalf("capability failure must not fail the turn, got %v", err)
		}
		if st.CurrentTaskType != TaskTypeError {
			t.Errorf("expected task type %q, got %q", TaskTypeError, st.CurrentTaskType)
		}
		if st.FinalResponse != ErrorResponseText {
			t.Errorf("unexpected final response %q", st.FinalResponse)
		}
	})

	t.Run("step limit aborts a runaway loop", func(t *testing.T) {
		f := newFixture(Config{MaxSteps: 6}, model.IntentDecision{
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")
		f.gate.alwaysReject = true

		st, err := f.engine.Run(ctx, newState())
		if !errors.Is(err, ErrStepLimitExceeded) {
			t.Fatalf("expected ErrStepLimitExceeded, got %v", err)
		}
		if st.FinalResponse != TimeoutResponseText {
			t.Errorf("unexpected final response %q", st.FinalResponse)
		}
	})

	t.Run("turn timeout is fatal", func(t *testing.T) {
		f := newFixture(Config{TurnTimeout: time.Nanosecond}, model.IntentDecision{
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")

		time.Sleep(time.Millisecond)
		_, err := f.engine.Run(ctx, newState())
		if !errors.Is(err, ErrTurnTimeout) {
			t.Fatalf("expected ErrTurnTimeout, got %v", err)
		}
	})

	t.Run("emergency routes straight to evacuation", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Intent:            "emergency_help",
			Confidence:        0.2, // low confidence must not matter
			Urgency:           "critical",
			EmergencyDetected: true,
			RoutingTarget:     "evacuation",
		}, "evacuation", capability.NameClarify)

		st, err := f.engine.Run(ctx, newState())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.caps[capability.NameClarify].executed != 0 {
			t.Error("an emergency must never be routed to clarify")
		}
		if f.caps["evacuation"].executed != 1 {
			t.Errorf("expected evacuation dispatch, got %d", f.caps["evacuation"].executed)
		}
		if st.ClarifyCount != 0 {
			t.Errorf("expected no clarifications, got %d", st.ClarifyCount)
		}
		if !st.EmergencyDetected {
			t.Error("expected emergency flag on the state")
		}
	})

	t.Run("low confidence routes to clarify once", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Intent:        "general_inquiry",
			Confidence:    0.3,
			RoutingTarget: "general",
		}, "general", capability.NameClarify)

		st, err := f.engine.Run(ctx, newState())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.caps[capability.NameClarify].executed != 1 {
			t.Errorf("expected clarify dispatch, got %d", f.caps[capability.NameClarify].executed)
		}
		if st.ClarifyCount != 1 {
			t.Errorf("expected clarify count 1, got %d", st.ClarifyCount)
		}
	})

	t.Run("degraded location still answers", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")
		f.engine.location = failingLocationResolver{}

		st := newState()
		st.Location = "41.3,2.1"
		st, err := f.engine.Run(ctx, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.FinalResponse == "" {
			t.Error("degraded enrichment must still produce a response")
		}
		found := false
		for _, d := range st.Degraded {
			if d == DegradedLocation {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in degraded notes, got %v", DegradedLocation, st.Degraded)
		}
	})

	t.Run("every enrichment fetch timing out still answers", func(t *testing.T) {
		f := newFixture(Config{
			HistoryTimeout:  5 * time.Millisecond,
			LocationTimeout: 5 * time.Millisecond,
			DeviceTimeout:   5 * time.Millisecond,
		}, model.IntentDecision{
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")
		delay := 250 * time.Millisecond
		f.engine.coordinator = memory.New(checkpoint.New(0, 0), slowLongTerm{delay: delay}, mockLogger{})
		f.engine.location = slowLocationResolver{delay: delay}
		f.engine.device = slowDeviceStatus{delay: delay}

		st := newState()
		st.Location = "41.3,2.1"
		st, err := f.engine.Run(ctx, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.FinalResponse == "" {
			t.Error("fully degraded enrichment must still produce a response")
		}
		want := map[string]bool{DegradedHistory: false, DegradedLocation: false, DegradedDevice: false}
		for _, d := range st.Degraded {
			want[d] = true
		}
		for note, seen := range want {
			if !seen {
				t.Errorf("expected %q in degraded notes, got %v", note, st.Degraded)
			}
		}
	})

	t.Run("localizes the final response", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			Confidence:    0.9,
			RoutingTarget: "general",
		}, "general")
		f.translator.out = "respuesta traducida"

		st := newState()
		st.Language = "es"
		st, err := f.engine.Run(ctx, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.FinalResponse != "respuesta traducida" {
			t.Errorf("expected localized response, got %q", st.FinalResponse)
		}
	})

	t.Run("emergency responses are not localized", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{
			EmergencyDetected: true,
			Confidence:        0.9,
			RoutingTarget:     "evacuation",
		}, "evacuation")

		st := newState()
		st.Language = "es"
		st, err := f.engine.Run(ctx, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.translator.calls != 0 {
			t.Error("emergency responses must skip outbound translation")
		}
		if st.FinalResponse != "draft from evacuation" {
			t.Errorf("unexpected final response %q", st.FinalResponse)
		}
	})

	t.Run("rejects an uninitialized state", func(t *testing.T) {
		f := newFixture(Config{}, model.IntentDecision{}, "general")

		cases := []*model.ConversationState{
			nil,
			{TurnInput: "hi"},
			{DeviceID: "dev"},
			{TurnInput: "hi", DeviceID: "dev"}, // session identity missing
		}
		for _, st := range cases {
			if _, err := f.engine.Run(ctx, st); !errors.Is(err, ErrInvalidState) {
				t.Errorf("expected ErrInvalidState for %+v, got %v", st, err)
			}
		}
	})
}
