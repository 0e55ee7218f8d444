package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Evacuation is the routing target for emergencies. It produces immediate
// evacuation guidance plus the emergency action payload for the client UI.
type Evacuation struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewEvacuation creates the evacuation capability.
func NewEvacuation(gateway *llmgateway.Gateway, l pkgLog.Logger) *Evacuation {
	return &Evacuation{gateway: gateway, l: l}
}

func (e *Evacuation) Name() string { return NameEvacuation }

func (e *Evacuation) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	location := state.Location
	if location == "" {
		location = "unknown"
	}
	deviceStatus := state.DeviceStatus
	if deviceStatus == "" {
		deviceStatus = "unknown"
	}

	prompt := fmt.Sprintf(PromptEvacuation, location, deviceStatus, len(state.ExternalAlerts), state.NormalizedInput)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := e.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskEvacuation,
	})

	return model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameEvacuation,
		RequiresAction:  true,
		Cards: []model.ActionCard{{
			"type":     "evacuation",
			"title":    "Evacuate now",
			"location": state.Location,
		}},
		EmergencyActions: []string{"open_map", "call_emergency", "notify_contacts"},
	}, nil
}
