package reflection

import (
	"context"
	"fmt"
	"strings"

	"disaster-safety-assistant/internal/capability"
	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Evaluator runs the semantic completeness check. Delegated so tests can
// substitute a deterministic reviewer.
type Evaluator interface {
	// Complete reports whether the draft fully answers the question, plus a
	// short reason when it does not.
	Complete(ctx context.Context, question, draft string) (bool, string)
}

// Gate evaluates a capability's draft and either approves it or returns it to
// the same capability with structured feedback. It is idempotent for a fixed
// (draft, reflectionCount) pair and never mutates the state: only the engine
// advances reflectionCount, keeping the loop bound enforceable in one place.
type Gate struct {
	evaluator Evaluator
	l         pkgLog.Logger
}

// New creates a reflection gate.
func New(evaluator Evaluator, l pkgLog.Logger) *Gate {
	return &Gate{evaluator: evaluator, l: l}
}

// Evaluate reviews the current draft. Transition rule, in order:
//
//  1. the reflection budget is spent: forced approve, termination guarantee
//  2. error/fallback drafts and action-only drafts: approve, not reviewable
//  3. content checks, then the semantic completeness check; any failure
//     returns NeedsRevision targeted at the capability that produced the draft
func (g *Gate) Evaluate(ctx context.Context, state *model.ConversationState) Verdict {
	if state.ReflectionCount >= model.MaxReflections {
		g.l.Infof(ctx, "%s: reflection budget spent (%d), forcing approval", LogPrefixEvaluate, state.ReflectionCount)
		return Verdict{Approved: true}
	}

	if state.CurrentTaskType == "error" || state.CurrentTaskType == capability.NameFallback {
		return Verdict{Approved: true}
	}
	if strings.TrimSpace(state.DraftResponse) == "" && state.ActionPayload != nil {
		// Action-only response; there is no text to review.
		return Verdict{Approved: true}
	}

	var feedback []string

	if strings.TrimSpace(state.DraftResponse) == "" {
		feedback = append(feedback, FeedbackEmpty)
	} else {
		if !wellFormed(state.DraftResponse) {
			feedback = append(feedback, FeedbackMalformed)
		}
		if leaksArtifacts(state.DraftResponse) {
			feedback = append(feedback, FeedbackLeakage)
		}
		if len(feedback) == 0 {
			if ok, reason := g.evaluator.Complete(ctx, state.NormalizedInput, state.DraftResponse); !ok {
				if reason == "" {
					reason = FeedbackIncomplete
				}
				feedback = append(feedback, reason)
			}
		}
	}

	if len(feedback) == 0 {
		return Verdict{Approved: true}
	}

	g.l.Infof(ctx, "%s: draft rejected (reflection %d): %s",
		LogPrefixEvaluate, state.ReflectionCount, strings.Join(feedback, "; "))
	return Verdict{
		Approved:         false,
		TargetCapability: state.CurrentTaskType,
		Feedback:         strings.Join(feedback, "; "),
	}
}

// wellFormed rejects drafts with unbalanced markdown fences.
func wellFormed(text string) bool {
	return strings.Count(text, "```")%2 == 0
}

func leaksArtifacts(text string) bool {
	lowered := strings.ToLower(text)
	for _, pattern := range leakagePatterns {
		if strings.Contains(lowered, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// LLMEvaluator implements Evaluator on the inference gateway. A gateway
// fallback answer reads as PASS, so review failures never block a turn.
type LLMEvaluator struct {
	gateway *llmgateway.Gateway
}

// NewLLMEvaluator creates the gateway-backed evaluator.
func NewLLMEvaluator(gateway *llmgateway.Gateway) *LLMEvaluator {
	return &LLMEvaluator{gateway: gateway}
}

// Complete implements Evaluator.
func (e *LLMEvaluator) Complete(ctx context.Context, question, draft string) (bool, string) {
	text, _ := e.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   fmt.Sprintf(PromptEvaluate, question, draft),
		TaskType: llmgateway.TaskEvaluate,
	})
	answer := strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToUpper(answer), "PASS") {
		return true, ""
	}
	reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(answer, "FAIL:"), "FAIL"))
	return false, reason
}
