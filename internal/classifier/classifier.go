package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
)

// Classify determines user intent from the turn. It never fails: any gateway
// or parse problem yields the fixed low-confidence fallback decision with the
// failure reason recorded in Reasoning.
func (c *IntentClassifier) Classify(ctx context.Context, state *model.ConversationState) model.IntentDecision {
	historyContext := ""
	if len(state.History) > 0 {
		historyContext = PromptHistoryPrefix
		for i, rec := range state.History {
			historyContext += fmt.Sprintf("%d. [%s] %s\n", i+1, rec.Role, rec.Content)
		}
		historyContext += "\n"
	}

	prompt := historyContext + fmt.Sprintf(PromptClassifySystem,
		state.NormalizedInput, state.Language, len(state.ExternalAlerts))

	text, ok := c.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:      prompt,
		TaskType:    llmgateway.TaskClassify,
		Temperature: ClassifyTemperature,
	})
	if !ok {
		c.l.Warnf(ctx, "%s: gateway fallback, using fallback decision", LogPrefixClassify)
		return fallbackDecision(ReasonGatewayFallback)
	}

	responseText := stripCodeFences(text)
	if responseText == "" {
		c.l.Warnf(ctx, "%s: empty response, using fallback decision", LogPrefixClassify)
		return fallbackDecision(ReasonEmptyResponse)
	}

	var decision model.IntentDecision
	if err := json.Unmarshal([]byte(responseText), &decision); err != nil {
		c.l.Warnf(ctx, "%s: failed to parse JSON: %v", LogPrefixClassify, err)
		return fallbackDecision(ReasonParsingError)
	}

	if decision.Intent == "" {
		decision.Intent = FallbackIntent
	}
	if decision.RoutingTarget == "" {
		decision.RoutingTarget = FallbackTarget
	}
	if decision.Confidence < 0 {
		decision.Confidence = 0
	} else if decision.Confidence > 1 {
		decision.Confidence = 1
	}

	c.l.Infof(ctx, "%s: classified as %s (confidence: %.2f, emergency: %t)",
		LogPrefixClassify, decision.Intent, decision.Confidence, decision.EmergencyDetected)
	return decision
}

// Normalize rewrites the turn input into the processing language for all
// downstream stages. Translation failure falls back to the original text.
func (c *IntentClassifier) Normalize(ctx context.Context, state *model.ConversationState) {
	state.NormalizedInput = state.TurnInput
	if state.Language == "" || state.Language == ProcessingLanguage {
		return
	}

	translated, err := c.translator.Translate(ctx, state.TurnInput, state.Language, ProcessingLanguage)
	if err != nil || strings.TrimSpace(translated) == "" {
		c.l.Warnf(ctx, "%s: translation failed, keeping original text: %v", LogPrefixNormalize, err)
		return
	}
	state.NormalizedInput = translated
}

func fallbackDecision(reason string) model.IntentDecision {
	return model.IntentDecision{
		Intent:        FallbackIntent,
		Confidence:    FallbackConfidence,
		Urgency:       model.UrgencyNormal.String(),
		RoutingTarget: FallbackTarget,
		Reasoning:     reason,
	}
}

// stripCodeFences removes a surrounding markdown code block, if any.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
