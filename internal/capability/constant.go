package capability

// Capability names. The router dispatches on these keys.
const (
	NameGeneral       = "general"
	NameClarify       = "clarify"
	NameFallback      = "fallback"
	NameEvacuation    = "evacuation"
	NameDisasterInfo  = "disaster_info"
	NameShelterSearch = "shelter_search"
	NameSMSDraft      = "sms_draft"
	NameSafetyGuide   = "safety_guide"
)

// Routing thresholds.
const (
	// ClarifyThreshold is the confidence below which the turn is routed to
	// the clarify pseudo-capability.
	ClarifyThreshold = 0.5

	// MaxClarifications bounds the clarify -> reclassify cycle. Once reached,
	// the turn routes to the decided target instead of asking again.
	MaxClarifications = 1
)

// Prompts.
const (
	PromptGeneral = `You are a calm, concise disaster safety assistant. Answer the user's message helpfully. If the message touches on disasters or personal safety, prioritize actionable guidance.

%sUser message: %s`

	PromptClarify = `The user's request was ambiguous. Ask exactly one short question that would let a disaster safety assistant decide whether they need emergency help, disaster information, a shelter, to contact family, or general advice.

User message: %s`

	PromptEvacuation = `The user may be in immediate danger. Give short, numbered evacuation instructions for their situation. Do not ask questions back.

Location: %s
Device status: %s
Active alerts: %d
User message: %s`

	PromptDisasterInfo = `Summarize what is known about the disaster the user asks about, based on the alerts below. Say clearly when something is unknown.

Alerts: %s
User message: %s`

	PromptShelterSearch = `The user is looking for a shelter or safe place near %s. Explain how to find the nearest official shelter and what to bring. Keep it short.

User message: %s`

	PromptSMSDraft = `Draft a short SMS (under 160 characters) the user can send to family to report their status. Reply with the SMS text only.

User situation: %s
Location: %s`

	PromptSafetyGuide = `Give a short, practical safety guide answering the user's preparedness question. Use a numbered list.

User message: %s`

	PromptRevisionSuffix = "\n\nA previous draft was rejected with this feedback, address it:\n%s"
)

// FallbackResponse is the generic recovery reply for unroutable turns.
const FallbackResponse = "I'm not sure how to help with that, but I can share disaster updates, find shelters, draft messages to family, or walk you through safety steps. What do you need?"
