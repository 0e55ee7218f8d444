package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// SafetyGuide answers preparedness questions with practical guidance.
type SafetyGuide struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewSafetyGuide creates the safety guide capability.
func NewSafetyGuide(gateway *llmgateway.Gateway, l pkgLog.Logger) *SafetyGuide {
	return &SafetyGuide{gateway: gateway, l: l}
}

func (s *SafetyGuide) Name() string { return NameSafetyGuide }

func (s *SafetyGuide) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	prompt := fmt.Sprintf(PromptSafetyGuide, state.NormalizedInput)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := s.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskSafetyGuide,
	})

	return model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameSafetyGuide,
	}, nil
}
