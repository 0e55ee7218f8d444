package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// General handles general_inquiry turns: greetings, capability questions,
// small talk.
type General struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewGeneral creates the general conversation capability.
func NewGeneral(gateway *llmgateway.Gateway, l pkgLog.Logger) *General {
	return &General{gateway: gateway, l: l}
}

func (g *General) Name() string { return NameGeneral }

func (g *General) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	historyContext := ""
	if len(state.History) > 0 {
		historyContext = "Recent conversation:\n"
		for _, rec := range state.History {
			historyContext += fmt.Sprintf("[%s] %s\n", rec.Role, rec.Content)
		}
		historyContext += "\n"
	}

	prompt := fmt.Sprintf(PromptGeneral, historyContext, state.NormalizedInput)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := g.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskRespond,
	})

	return model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameGeneral,
	}, nil
}

// withRevisionFeedback appends reflection feedback when this capability is
// re-invoked after a rejected draft.
func withRevisionFeedback(prompt string, state *model.ConversationState) string {
	if state.ImprovementFeedback == "" {
		return prompt
	}
	return prompt + fmt.Sprintf(PromptRevisionSuffix, state.ImprovementFeedback)
}
