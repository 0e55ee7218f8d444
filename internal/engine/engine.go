package engine

import (
	"context"
	"fmt"
	"time"

	"disaster-safety-assistant/internal/capability"
	"disaster-safety-assistant/internal/classifier"
	"disaster-safety-assistant/internal/emergency"
	"disaster-safety-assistant/internal/memory/checkpoint"
	"disaster-safety-assistant/internal/model"
)

// Run processes one turn through the state machine: enrichment,
// classification, routing, dispatch, and the bounded review loop. It returns
// the terminal state; the returned error is non-nil only for the two fatal
// failure modes (turn timeout and step limit). Every recovered failure still
// yields a best-effort FinalResponse.
func (e *Engine) Run(ctx context.Context, st *model.ConversationState) (*model.ConversationState, error) {
	if err := validate(st); err != nil {
		return st, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.TurnTimeout)
	defer cancel()

	current := StateStart
	steps := 0
	var decision model.IntentDecision
	var target string

	for !current.Terminal() {
		steps++
		if steps > e.config.MaxSteps {
			e.l.Errorf(ctx, "%s: step limit %d exceeded in state %s, aborting turn",
				LogPrefixRun, e.config.MaxSteps, current)
			e.fatal(st)
			return st, ErrStepLimitExceeded
		}
		if ctx.Err() != nil {
			e.l.Errorf(ctx, "%s: turn timed out in state %s", LogPrefixRun, current)
			e.fatal(st)
			return st, ErrTurnTimeout
		}

		e.l.Debugf(ctx, "%s: step %d, state %s", LogPrefixRun, steps, current)

		switch current {
		case StateStart:
			e.enrich(ctx, st)
			current = Transition(current, EventEnriched)

		case StateClassifying:
			e.classifier.Normalize(ctx, st)
			decision = e.classifier.Classify(ctx, st)
			st.Intent = decision.Intent
			st.IntentConfidence = decision.Confidence
			st.Urgency = model.ParseUrgency(decision.Urgency)
			st.EmergencyDetected = emergency.IsEmergency(decision)
			decision.EmergencyDetected = st.EmergencyDetected
			current = Transition(current, EventClassified)

		case StateRouting:
			target = capability.Route(decision, st.ClarifyCount)
			if target == capability.NameClarify {
				st.ClarifyCount++
			}
			e.l.Infof(ctx, "%s: routed intent %s to %s (confidence %.2f, emergency %t)",
				LogPrefixRun, decision.Intent, target, decision.Confidence, st.EmergencyDetected)
			current = Transition(current, EventRouted)

		case StateDispatching:
			partial, err := e.dispatch(ctx, target, st)
			if err != nil {
				e.l.Errorf(ctx, "%s: capability %s failed: %v", LogPrefixRun, target, err)
				e.recoverCapabilityFailure(st)
				current = Transition(current, EventFail)
				break
			}
			st.Apply(partial)
			st.NeedsImprovement = false
			current = Transition(current, EventDispatched)

		case StateReviewing:
			verdict := e.gate.Evaluate(ctx, st)
			if verdict.Approved {
				e.finalize(ctx, st)
				current = Transition(current, EventApproved)
				break
			}
			st.ReflectionCount++
			st.NeedsImprovement = true
			st.ImprovementTarget = verdict.TargetCapability
			st.ImprovementFeedback = verdict.Feedback
			if verdict.TargetCapability != "" {
				target = verdict.TargetCapability
			}
			current = Transition(current, EventRevise)

		case StateLoopBack:
			e.l.Infof(ctx, "%s: reflection %d, re-dispatching %s", LogPrefixRun, st.ReflectionCount, target)
			current = Transition(current, EventRouted)
		}

		e.persist(st, current)
	}

	return st, nil
}

// dispatch resolves and executes a capability. A panic inside a capability is
// captured as an error so one broken handler cannot take down the turn.
func (e *Engine) dispatch(ctx context.Context, target string, st *model.ConversationState) (partial model.PartialState, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capability panic: %v", r)
		}
	}()

	handler := e.registry.Resolve(target)
	if handler == nil {
		return model.PartialState{}, fmt.Errorf("no capability registered for %q and no fallback", target)
	}
	return handler.Execute(ctx, st)
}

// finalize fixes the response text, applies the post-review emergency checks,
// localizes the reply, and writes the turn through the memory coordinator
// exactly once, after the final text is fixed.
func (e *Engine) finalize(ctx context.Context, st *model.ConversationState) {
	st.FinalResponse = st.DraftResponse

	// Advisory upgrade of the output flags only; routing already happened
	// and is never revisited.
	st.EmergencyUpgraded = emergency.RetroactiveUpgrade(st)

	e.localize(ctx, st)

	now := time.Now()
	e.coordinator.Write(ctx, st.SessionID, st.DeviceID,
		model.MemoryRecord{Role: model.RoleUser, Content: st.TurnInput, SourceTimestamp: now},
		model.MemoryRecord{Role: model.RoleAssistant, Content: st.FinalResponse, SourceTimestamp: now},
	)
}

// localize translates the final response back into the user's language.
// Emergency responses are deliberately left in the processing language's
// intact form when translation misbehaves, and translation failure always
// keeps the original.
func (e *Engine) localize(ctx context.Context, st *model.ConversationState) {
	if st.Language == "" || st.Language == classifier.ProcessingLanguage {
		return
	}
	if st.EmergencyDetected || st.EmergencyUpgraded {
		// Do not risk translating an urgent response away from an intact
		// state; the client renders bilingual emergency guidance itself.
		return
	}
	translated, err := e.translator.Translate(ctx, st.FinalResponse, classifier.ProcessingLanguage, st.Language)
	if err != nil {
		e.l.Warnf(ctx, "%s: response localization failed, keeping processing language: %v", LogPrefixRun, err)
		return
	}
	st.FinalResponse = translated
}

// recoverCapabilityFailure builds the generic recovered-error state. The
// reflection gate is skipped: errors are not subject to quality review.
// Emergency flags survive from before the failure.
func (e *Engine) recoverCapabilityFailure(st *model.ConversationState) {
	st.CurrentTaskType = TaskTypeError
	st.DraftResponse = ErrorResponseText
	st.FinalResponse = ErrorResponseText
}

// fatal fills the generic failure response for the two fatal error modes.
func (e *Engine) fatal(st *model.ConversationState) {
	st.CurrentTaskType = TaskTypeError
	st.FinalResponse = TimeoutResponseText
}

// persist checkpoints the thread after each step, so a follow-up turn can
// resume against the freshest view even if the durable write lags.
func (e *Engine) persist(st *model.ConversationState, current State) {
	records := make([]model.MemoryRecord, 0, len(st.History)+2)
	records = append(records, st.History...)
	records = append(records, model.MemoryRecord{
		Role:            model.RoleUser,
		Content:         st.TurnInput,
		SourceTimestamp: time.Now(),
	})
	if st.FinalResponse != "" {
		records = append(records, model.MemoryRecord{
			Role:            model.RoleAssistant,
			Content:         st.FinalResponse,
			SourceTimestamp: time.Now(),
		})
	}
	e.checkpoints.Put(st.ThreadID, checkpoint.Snapshot{
		Records:   records,
		LastState: current.String(),
	})
}

func validate(st *model.ConversationState) error {
	if st == nil {
		return ErrInvalidState
	}
	if st.DeviceID == "" || st.TurnInput == "" {
		return fmt.Errorf("%w: device id and turn input are required", ErrInvalidState)
	}
	if st.SessionID == "" || st.ThreadID == "" {
		return fmt.Errorf("%w: session identity not initialized", ErrInvalidState)
	}
	return nil
}
