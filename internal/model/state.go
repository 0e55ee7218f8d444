package model

import "time"

// Urgency is the ordered urgency level of a turn: Normal < Elevated < Critical.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyElevated
	UrgencyCritical
)

// String returns the wire name of the urgency level.
func (u Urgency) String() string {
	switch u {
	case UrgencyElevated:
		return "elevated"
	case UrgencyCritical:
		return "critical"
	default:
		return "normal"
	}
}

// ParseUrgency maps a wire name to an Urgency. Unknown values map to normal.
func ParseUrgency(s string) Urgency {
	switch s {
	case "elevated":
		return UrgencyElevated
	case "critical":
		return UrgencyCritical
	default:
		return UrgencyNormal
	}
}

// MaxReflections is the hard bound on reflection cycles per turn.
const MaxReflections = 2

// Role identifies the author of a memory record.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MemoryRecord is one conversation turn half as persisted by either store.
// Identity for deduplication is (Role, Content); SourceTimestamp is ordering
// advice only, since the two stores do not share a clock.
type MemoryRecord struct {
	Role            Role
	Content         string
	SourceTimestamp time.Time
}

// Key returns the deduplication key of the record.
func (r MemoryRecord) Key() string {
	return string(r.Role) + "\x00" + r.Content
}

// IntentDecision is the classifier's verdict for one turn. Produced once and
// immutable afterward; a failed classification yields FallbackDecision.
type IntentDecision struct {
	Intent            string  `json:"intent"`
	Confidence        float64 `json:"confidence"`
	Urgency           string  `json:"urgency"`
	EmergencyDetected bool    `json:"emergency_detected"`
	RoutingTarget     string  `json:"routing_target"`
	Reasoning         string  `json:"reasoning"`
}

// ActionCard is an opaque UI card payload produced by a capability.
type ActionCard map[string]any

// PartialState is what a capability returns: the fields it is allowed to
// contribute back into the ConversationState.
type PartialState struct {
	DraftResponse    string
	ActionPayload    map[string]any
	Cards            []ActionCard
	RequiresAction   bool
	CurrentTaskType  string
	EmergencyActions []string
}

// ConversationState is the single mutable record threaded through the engine.
// It is created at request entry, mutated only by the engine and the
// components it calls synchronously, and discarded at response emission.
type ConversationState struct {
	TurnInput       string
	NormalizedInput string
	Language        string

	SessionID string
	DeviceID  string
	ThreadID  string

	Intent            string
	IntentConfidence  float64
	Urgency           Urgency
	EmergencyDetected bool

	// EmergencyUpgraded is the advisory post-generation upgrade of the output
	// flags; it never affects routing.
	EmergencyUpgraded bool

	ReflectionCount     int
	NeedsImprovement    bool
	ImprovementTarget   string
	ImprovementFeedback string

	ClarifyCount int

	DraftResponse string
	FinalResponse string
	ActionPayload map[string]any

	Cards            []ActionCard
	RequiresAction   bool
	CurrentTaskType  string
	EmergencyActions []string

	History []MemoryRecord

	// Request context carried for capabilities and the emergency filter.
	Location          string
	DeviceStatus      string
	LocalContactCount int
	ExternalAlerts    []ExternalAlert

	// Degraded context notes, surfaced through debugInfo.
	Degraded []string
}

// ExternalAlert is one government/carrier alert attached to the inbound request.
type ExternalAlert struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Headline string `json:"headline"`
	Resolved bool   `json:"resolved"`
}

// Apply merges a capability's partial result into the state.
func (s *ConversationState) Apply(p PartialState) {
	s.DraftResponse = p.DraftResponse
	if p.ActionPayload != nil {
		s.ActionPayload = p.ActionPayload
	}
	if len(p.Cards) > 0 {
		s.Cards = p.Cards
	}
	if p.RequiresAction {
		s.RequiresAction = true
	}
	if p.CurrentTaskType != "" {
		s.CurrentTaskType = p.CurrentTaskType
	}
	if len(p.EmergencyActions) > 0 {
		s.EmergencyActions = p.EmergencyActions
	}
}

// UnresolvedAlerts reports whether at least one external alert is unresolved.
func (s *ConversationState) UnresolvedAlerts() bool {
	for _, a := range s.ExternalAlerts {
		if !a.Resolved {
			return true
		}
	}
	return false
}
