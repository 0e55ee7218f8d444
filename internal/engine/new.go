package engine

import (
	"context"

	"disaster-safety-assistant/internal/capability"
	"disaster-safety-assistant/internal/classifier"
	"disaster-safety-assistant/internal/memory"
	"disaster-safety-assistant/internal/memory/checkpoint"
	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/internal/reflection"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// LocationResolver turns the raw location attached to the request into a
// normalized place description.
type LocationResolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

// DeviceStatusProvider reports the device's current status (battery,
// connectivity) for capability prompts.
type DeviceStatusProvider interface {
	Status(ctx context.Context, deviceID string) (string, error)
}

// CheckpointStore is the engine's per-step persistence target.
type CheckpointStore interface {
	Get(threadID string) (checkpoint.Snapshot, bool)
	Put(threadID string, snap checkpoint.Snapshot)
}

// Gate reviews a draft and decides approve vs loop back.
type Gate interface {
	Evaluate(ctx context.Context, state *model.ConversationState) reflection.Verdict
}

// Translator localizes the final response back into the user's language.
type Translator interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
}

// Engine is the state machine runner composing the classifier, router,
// capabilities, reflection gate, and memory coordinator into one request
// lifecycle.
type Engine struct {
	config      Config
	classifier  classifier.Classifier
	registry    *capability.Registry
	gate        Gate
	coordinator *memory.Coordinator
	checkpoints CheckpointStore
	location    LocationResolver
	device      DeviceStatusProvider
	translator  Translator
	l           pkgLog.Logger
}

// New creates an Engine. All collaborators are injected by reference; the
// engine owns no globals.
func New(
	cfg Config,
	cls classifier.Classifier,
	registry *capability.Registry,
	gate Gate,
	coordinator *memory.Coordinator,
	checkpoints CheckpointStore,
	location LocationResolver,
	device DeviceStatusProvider,
	translator Translator,
	l pkgLog.Logger,
) *Engine {
	cfg.applyDefaults()
	return &Engine{
		config:      cfg,
		classifier:  cls,
		registry:    registry,
		gate:        gate,
		coordinator: coordinator,
		checkpoints: checkpoints,
		location:    location,
		device:      device,
		translator:  translator,
		l:           l,
	}
}
