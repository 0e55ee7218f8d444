package emergency

import (
	"strings"

	"disaster-safety-assistant/internal/model"
)

// emergencyContentKeywords match response text that reads like emergency
// guidance even when the classifier did not flag the turn.
var emergencyContentKeywords = []string{
	"evacuate", "evacuation", "immediate danger", "call 911",
	"emergency services", "move to higher ground", "take shelter immediately",
	"leave the area", "life-threatening", "do not stay",
}

// IsEmergency reports whether the classifier flagged the turn as an
// emergency. Consulted by the router before dispatch; an emergency must never
// be slowed down by disambiguation.
func IsEmergency(decision model.IntentDecision) bool {
	return decision.EmergencyDetected || model.ParseUrgency(decision.Urgency) == model.UrgencyCritical
}

// RetroactiveUpgrade decides whether the output flags should be upgraded
// after generation: the classifier said not-emergency, the produced text
// matches emergency-content patterns, and at least one external alert is
// unresolved. The upgrade is advisory metadata only; routing already
// happened and is never revisited.
func RetroactiveUpgrade(state *model.ConversationState) bool {
	if state.EmergencyDetected {
		return false
	}
	if !state.UnresolvedAlerts() {
		return false
	}
	return matchesEmergencyContent(state.FinalResponse)
}

func matchesEmergencyContent(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range emergencyContentKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
