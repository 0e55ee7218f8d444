package dialogue

import "disaster-safety-assistant/internal/model"

// TurnInput is one inbound user turn plus its contextual metadata.
type TurnInput struct {
	SessionID         string // optional; generated when absent
	DeviceID          string
	UserInput         string
	UserLanguage      string
	Location          string // optional raw location
	LocalContactCount int
	ExternalAlerts    []model.ExternalAlert
}

// ChatMessage is one history entry in the outbound response.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnOutput is the assistant's reply for one turn.
type TurnOutput struct {
	ResponseText     string             `json:"response_text"`
	CurrentTaskType  string             `json:"current_task_type"`
	Status           string             `json:"status"` // "success" or "error"
	Cards            []model.ActionCard `json:"cards"`
	RequiresAction   bool               `json:"requires_action,omitempty"`
	ActionData       map[string]any     `json:"action_data,omitempty"`
	IsEmergency      bool               `json:"is_emergency_response"`
	EmergencyActions []string           `json:"emergency_actions,omitempty"`
	ChatHistory      []ChatMessage      `json:"chat_history"`
	DebugInfo        map[string]any     `json:"debug_info"`
	SessionID        string             `json:"session_id"`
}

// Statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
