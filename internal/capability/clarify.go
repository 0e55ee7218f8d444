package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Clarify is the pseudo-capability that asks a disambiguating question when
// classification confidence is low. The engine bounds how often it can run.
type Clarify struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewClarify creates the clarify pseudo-capability.
func NewClarify(gateway *llmgateway.Gateway, l pkgLog.Logger) *Clarify {
	return &Clarify{gateway: gateway, l: l}
}

func (c *Clarify) Name() string { return NameClarify }

func (c *Clarify) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	text, _ := c.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   fmt.Sprintf(PromptClarify, state.NormalizedInput),
		TaskType: llmgateway.TaskClarify,
	})

	return model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameClarify,
	}, nil
}
