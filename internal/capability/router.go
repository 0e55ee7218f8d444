package capability

import "disaster-safety-assistant/internal/model"

// Route picks the capability name for a classified turn. Pure function;
// precedence is evaluated in order and the first match wins:
//
//  1. emergencies go straight to the routing target, never to clarify
//  2. low confidence goes to clarify, while the clarify budget lasts
//  3. everything else goes to the routing target
//
// Unknown target names are resolved to the fallback capability at dispatch
// time by Registry.Resolve.
func Route(decision model.IntentDecision, clarifyCount int) string {
	if decision.EmergencyDetected {
		return decision.RoutingTarget
	}
	if decision.Confidence < ClarifyThreshold && clarifyCount < MaxClarifications {
		return NameClarify
	}
	return decision.RoutingTarget
}
