package llmgateway

import "time"

// TaskType identifies the kind of work a prompt performs. It selects the
// deterministic fallback text used when all attempts fail.
type TaskType string

const (
	TaskClassify      TaskType = "classify"
	TaskRespond       TaskType = "respond"
	TaskClarify       TaskType = "clarify"
	TaskEvaluate      TaskType = "evaluate"
	TaskTranslate     TaskType = "translate"
	TaskDisasterInfo  TaskType = "disaster_info"
	TaskShelterSearch TaskType = "shelter_search"
	TaskSMSDraft      TaskType = "sms_draft"
	TaskSafetyGuide   TaskType = "safety_guide"
	TaskEvacuation    TaskType = "evacuation"
)

// fallbackTexts is the fixed lookup table of deterministic fallback strings,
// keyed by task type. The gateway never returns an error to its caller; when
// retries are exhausted the matching entry here is returned instead.
var fallbackTexts = map[TaskType]string{
	TaskClassify:      "classification unavailable",
	TaskRespond:       "I'm sorry, I couldn't process that right now. Please try again in a moment.",
	TaskClarify:       "Could you tell me a little more about what you need help with?",
	TaskEvaluate:      "PASS",
	TaskTranslate:     "",
	TaskDisasterInfo:  "I couldn't reach the disaster information service. Please check official channels for the latest updates.",
	TaskShelterSearch: "I couldn't look up shelters right now. If you are in danger, move to high ground or a sturdy building and follow local guidance.",
	TaskSMSDraft:      "I am safe. I will contact you again as soon as I can.",
	TaskSafetyGuide:   "I couldn't retrieve the safety guide right now. Stay calm and follow instructions from local authorities.",
	TaskEvacuation:    "Please move away from danger immediately and follow evacuation instructions from local authorities.",
}

// fallbackDefault covers task types missing from the table.
const fallbackDefault = "I'm sorry, something went wrong. Please try again."

const (
	// DefaultRetryAttempts is the total number of attempts per Invoke.
	DefaultRetryAttempts = 3

	// DefaultRetryBackoff is the first backoff delay; it doubles per retry.
	DefaultRetryBackoff = 1 * time.Second
)

// FallbackText returns the deterministic fallback string for a task type.
func FallbackText(taskType TaskType) string {
	if text, ok := fallbackTexts[taskType]; ok {
		return text
	}
	return fallbackDefault
}
