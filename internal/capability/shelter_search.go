package capability

import (
	"context"
	"fmt"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// ShelterSearch helps the user find a shelter or safe place near their
// location.
type ShelterSearch struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewShelterSearch creates the shelter search capability.
func NewShelterSearch(gateway *llmgateway.Gateway, l pkgLog.Logger) *ShelterSearch {
	return &ShelterSearch{gateway: gateway, l: l}
}

func (s *ShelterSearch) Name() string { return NameShelterSearch }

func (s *ShelterSearch) Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error) {
	location := state.Location
	if location == "" {
		location = "their current area"
	}

	prompt := fmt.Sprintf(PromptShelterSearch, location, state.NormalizedInput)
	prompt = withRevisionFeedback(prompt, state)

	text, _ := s.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   prompt,
		TaskType: llmgateway.TaskShelterSearch,
	})

	return model.PartialState{
		DraftResponse:   text,
		CurrentTaskType: NameShelterSearch,
		RequiresAction:  true,
		ActionPayload: map[string]any{
			"action":   "shelter_search",
			"location": state.Location,
		},
		Cards: []model.ActionCard{{
			"type":     "shelter_map",
			"location": state.Location,
		}},
	}, nil
}
