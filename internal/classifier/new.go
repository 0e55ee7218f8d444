package classifier

import (
	"context"

	"disaster-safety-assistant/internal/model"
	"disaster-safety-assistant/pkg/llmgateway"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Classifier turns a raw user turn into a typed IntentDecision and normalizes
// the input into the processing language.
type Classifier interface {
	Classify(ctx context.Context, state *model.ConversationState) model.IntentDecision
	Normalize(ctx context.Context, state *model.ConversationState)
}

// Translator converts text between languages. Translation is delegated to an
// external capability; failure falls back to the original text.
type Translator interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
}

// IntentClassifier classifies user intent using the inference gateway.
type IntentClassifier struct {
	gateway    *llmgateway.Gateway
	translator Translator
	l          pkgLog.Logger
}

// Ensure IntentClassifier implements Classifier
var _ Classifier = (*IntentClassifier)(nil)

// New creates a new IntentClassifier
func New(gateway *llmgateway.Gateway, translator Translator, l pkgLog.Logger) *IntentClassifier {
	return &IntentClassifier{
		gateway:    gateway,
		translator: translator,
		l:          l,
	}
}
