package usecase

import (
	"context"
	"errors"
	"strings"

	"disaster-safety-assistant/internal/dialogue"
	"disaster-safety-assistant/internal/engine"
	"disaster-safety-assistant/internal/model"
)

// ProcessTurn builds the ConversationState for the request, runs the engine,
// and shapes the outbound response. The state lives for exactly one request;
// only the final response, action payload, and the persisted memory records
// outlive it.
func (uc *implUseCase) ProcessTurn(ctx context.Context, input dialogue.TurnInput) (dialogue.TurnOutput, error) {
	if input.DeviceID == "" {
		return dialogue.TurnOutput{}, dialogue.ErrMissingDeviceID
	}
	if strings.TrimSpace(input.UserInput) == "" {
		return dialogue.TurnOutput{}, dialogue.ErrMissingUserInput
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = model.NewSessionID()
	}

	st := &model.ConversationState{
		TurnInput:         input.UserInput,
		NormalizedInput:   input.UserInput,
		Language:          input.UserLanguage,
		SessionID:         sessionID,
		DeviceID:          input.DeviceID,
		ThreadID:          model.BuildThreadID(input.DeviceID, sessionID),
		Location:          input.Location,
		LocalContactCount: input.LocalContactCount,
		ExternalAlerts:    input.ExternalAlerts,
	}

	st, err := uc.engine.Run(ctx, st)
	if err != nil && !isFatalTurnError(err) {
		// Validation problems surface to the delivery layer as-is.
		return dialogue.TurnOutput{}, err
	}

	out := presentTurn(st, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "dialogue.ProcessTurn: fatal turn error: %v", err)
		out.Status = dialogue.StatusError
		out.DebugInfo["fatal_error"] = err.Error()
	}
	return out, nil
}

func isFatalTurnError(err error) bool {
	return errors.Is(err, engine.ErrTurnTimeout) || errors.Is(err, engine.ErrStepLimitExceeded)
}

func presentTurn(st *model.ConversationState, sessionID string) dialogue.TurnOutput {
	status := dialogue.StatusSuccess
	if st.CurrentTaskType == engine.TaskTypeError {
		status = dialogue.StatusError
	}

	history := make([]dialogue.ChatMessage, 0, len(st.History)+2)
	for _, rec := range st.History {
		history = append(history, dialogue.ChatMessage{Role: string(rec.Role), Content: rec.Content})
	}
	history = append(history, dialogue.ChatMessage{Role: string(model.RoleUser), Content: st.TurnInput})
	if st.FinalResponse != "" {
		history = append(history, dialogue.ChatMessage{Role: string(model.RoleAssistant), Content: st.FinalResponse})
	}

	debug := map[string]any{
		"intent":           st.Intent,
		"confidence":       st.IntentConfidence,
		"urgency":          st.Urgency.String(),
		"reflection_count": st.ReflectionCount,
		"clarify_count":    st.ClarifyCount,
	}
	if len(st.Degraded) > 0 {
		debug["degraded_context"] = st.Degraded
	}

	out := dialogue.TurnOutput{
		ResponseText:    st.FinalResponse,
		CurrentTaskType: st.CurrentTaskType,
		Status:          status,
		Cards:           st.Cards,
		RequiresAction:  st.RequiresAction,
		ActionData:      st.ActionPayload,
		IsEmergency:     st.EmergencyDetected || st.EmergencyUpgraded,
		ChatHistory:     history,
		DebugInfo:       debug,
		SessionID:       sessionID,
	}
	if out.IsEmergency {
		out.EmergencyActions = st.EmergencyActions
	}
	return out
}
