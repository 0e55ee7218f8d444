package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// SMSDraft drafts a status message the user can send to family. The action
// payload carries the draft so the client can prefill the SMS composer.
type SMSDraft struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewSMSDraft creates the SMS drafting capability.
func NewSMSDraft(gateway *llmgateway.Gateway, l pkgLog.Logger) *SMSDraft {
	return &SMSDraft{gateway: gateway, l: l}
}

func (s *SMSDraft) Name() string { return NameSMSDraft }

func (s *SMSDraft) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	prompt := fmt.Sprintf(PromptSMSDraft, state.NormalizedInput, state.Location)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := s.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskSMSDraft,
	})

	response := text
	if state.LocalContactCount > 0 {
		response = fmt.Sprintf("Here's a draft you can send to your %d saved contacts:\n\n%s", state.LocalContactCount, text)
	} else {
		response = "Here's a draft you can send:\n\n" + text
	}

	return model.PartialState{
		DraftResponse:   response,
		CurrentTaskType: NameSMSDraft,
		RequiresAction:  true,
		ActionPayload: map[string]any{
			"action":        "send_sms",
			"sms_body":      text,
			"contact_count": state.LocalContactCount,
		},
	}, nil
}
