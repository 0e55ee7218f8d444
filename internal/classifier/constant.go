package classifier

// Log prefixes
const (
	LogPrefixClassify  = "internal.classifier.Classify"
	LogPrefixNormalize = "internal.classifier.Normalize"
)

// ProcessingLanguage is the language all downstream stages operate in.
const ProcessingLanguage = "en"

// Classification prompt. The model must answer with bare JSON; markdown code
// fences around it are tolerated by the parser.
const (
	PromptClassifySystem = `You are the intent classifier of a disaster safety assistant. Analyze the user's message and decide how to route it.

User message: %q
User language: %s
Active alerts in the area: %d

Possible intents and routing targets:
1. emergency_help -> "evacuation": user is in immediate danger or asks how to escape
2. disaster_inquiry -> "disaster_info": questions about an ongoing or recent disaster
3. shelter_inquiry -> "shelter_search": user wants to find a shelter or safe place
4. contact_family -> "sms_draft": user wants to notify family or friends
5. preparedness -> "safety_guide": how to prepare for or behave during a disaster
6. general_inquiry -> "general": greetings, capability questions, small talk

Respond with JSON in this format:
{
  "intent": "emergency_help|disaster_inquiry|shelter_inquiry|contact_family|preparedness|general_inquiry",
  "confidence": 0.0-1.0,
  "urgency": "normal|elevated|critical",
  "emergency_detected": true|false,
  "routing_target": "evacuation|disaster_info|shelter_search|sms_draft|safety_guide|general",
  "reasoning": "one short sentence"
}`

	PromptHistoryPrefix = "Recent conversation:\n"
)

// Classifier configuration
const (
	ClassifyTemperature = 0.1

	// Fallback decision used when classification fails (recovered error).
	FallbackIntent     = "general_inquiry"
	FallbackConfidence = 0.3
	FallbackTarget     = "general"
)

// Fallback reasons
const (
	ReasonGatewayFallback = "fallback: inference gateway returned fallback text"
	ReasonParsingError    = "fallback: failed to parse classification JSON"
	ReasonEmptyResponse   = "fallback: empty classification response"
)
