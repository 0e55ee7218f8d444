package reflection

// Log prefixes
const (
	LogPrefixEvaluate = "internal.reflection.Evaluate"
)

// leakagePatterns are residual artifacts that must never reach the user.
var leakagePatterns = []string{
	"{{", "}}",
	"[insert",
	"[placeholder",
	"lorem ipsum",
	"TODO:",
	"search result 1", "search result 2", "search result 3",
	"search result n",
}

// Evaluation prompt. The evaluator must answer PASS, or FAIL plus a reason.
const PromptEvaluate = `You are reviewing a disaster safety assistant's draft reply. Decide whether it fully answers the user's message. Reply with exactly "PASS" if it does, or "FAIL: <one short reason>" if it does not.

User message: %s
Draft reply: %s`

// Feedback fragments accumulated into the revision instruction.
const (
	FeedbackEmpty      = "the draft was empty; produce an actual answer"
	FeedbackMalformed  = "the draft is structurally malformed (unbalanced formatting)"
	FeedbackLeakage    = "the draft leaks template or search-result artifacts; remove them"
	FeedbackIncomplete = "the draft does not fully answer the user"
)
