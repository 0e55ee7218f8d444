package capability

import (
	"context"
	"encoding/json"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// DisasterInfo answers questions about ongoing or recent disasters using the
// external alerts attached to the request.
type DisasterInfo struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewDisasterInfo creates the disaster information capability.
func NewDisasterInfo(gateway *llmgateway.Gateway, l pkgLog.Logger) *DisasterInfo {
	return &DisasterInfo{gateway: gateway, l: l}
}

func (d *DisasterInfo) Name() string { return NameDisasterInfo }

func (d *DisasterInfo) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	alerts := "none"
	if len(state.ExternalAlerts) > 0 {
		raw, err := json.Marshal(state.ExternalAlerts)
		if err == nil {
			alerts = string(raw)
		}
	}

	prompt := fmt.Sprintf(PromptDisasterInfo, alerts, state.NormalizedInput)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := d.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskDisasterInfo,
	})

	partial := model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameDisasterInfo,
	}
	for _, alert := range state.ExternalAlerts {
		partial.Cards = append(partial.Cards, model.ActionCard{
			"type":     "alert",
			"alert_id": alert.ID,
			"headline": alert.Headline,
			"resolved": alert.Resolved,
		})
	}
	return partial, nil
}
