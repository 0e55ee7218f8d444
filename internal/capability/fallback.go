package capability

import (
	"context"

	"disaster-safety-assistant/internal/model"
)

// Fallback is the generic recovery capability dispatched when the classifier
// produced a capability name nothing is registered for.
type Fallback struct{}

// NewFallback creates the fallback capability.
func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Name() string { return NameFallback }

func (f *Fallback) Execute(_ context.Context, _ *model.ConversationState) (model.PartialState, error) {
	return model.PartialState{
		DraftResponse:   FallbackResponse,
		CurrentTaskType: NameFallback,
	}, nil
}
