package capability

import (
	"context"
	"fmt"
	"strings"

	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Translate converts text between the user's language and the processing
// language. It backs the classifier's normalization step and the outbound
// localization of final responses.
type Translate struct {
	gateway *llmgateway.Gateway
	l       pkgLog.Logger
}

// NewTranslate creates the translation capability.
func NewTranslate(gateway *llmgateway.Gateway, l pkgLog.Logger) *Translate {
	return &Translate{gateway: gateway, l: l}
}

// Translate converts text from fromLang to toLang. An empty gateway result is
// reported as an error so the caller can keep the original text.
func (t *Translate) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	result, ok := t.gateway.Invoke(ctx, llmgateway.InvokeRequest{
		Prompt:   fmt.Sprintf(PromptTranslate, fromLang, toLang, text),
		TaskType: llmgateway.TaskTranslate,
	})
	if !ok || strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("translate: empty result for %s->%s", fromLang, toLang)
	}
	return strings.TrimSpace(result), nil
}

// PromptTranslate mirrors the classifier's prompt so both directions render
// identically.
const PromptTranslate = `Translate the following message from %s to %s. Reply with the translation only, no commentary.

%s`
