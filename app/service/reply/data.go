package reply

import "time"

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
)

// AllTones is the closed tone set in its stable listing order.
var AllTones = []Tone{
	ToneProfessional,
	ToneFriendly,
	ToneCasual,
	ToneFormal,
}

type Intent string

const (
	IntentAcknowledge Intent = "acknowledge"
	IntentAgree       Intent = "agree"
	IntentDisagree    Intent = "disagree"
	IntentQuestion    Intent = "question"
	IntentAnswer      Intent = "answer"
	IntentThanks      Intent = "thanks"
	IntentGreeting    Intent = "greeting"
	IntentFarewell    Intent = "farewell"
	IntentSuggestion  Intent = "suggestion"
	IntentGeneral     Intent = "general"
)

// AllIntents is the closed intent set in its stable listing order.
var AllIntents = []Intent{
	IntentAcknowledge,
	IntentAgree,
	IntentDisagree,
	IntentQuestion,
	IntentAnswer,
	IntentThanks,
	IntentGreeting,
	IntentFarewell,
	IntentSuggestion,
	IntentGeneral,
}

type Message struct {
	ID            string     `json:"id,omitempty"`
	Content       string     `json:"content" validate:"required,min=1,max=4000"`
	SenderID      string     `json:"sender_id" validate:"required"`
	SenderName    string     `json:"sender_name,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	IsCurrentUser bool       `json:"is_current_user"`
}

type ConversationContext struct {
	Messages    []Message `json:"messages" validate:"required,min=1,max=20,dive"`
	ChannelName string    `json:"channel_name,omitempty"`
	// "dm", "channel" or "thread"
	ChannelType string `json:"channel_type,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

type Request struct {
	Context             ConversationContext `json:"context" validate:"required"`
	CurrentUserID       string              `json:"current_user_id" validate:"required"`
	CurrentUserName     string              `json:"current_user_name,omitempty"`
	Tone                Tone                `json:"tone" validate:"omitempty,oneof=professional friendly casual formal"`
	NumSuggestions      int                 `json:"num_suggestions" validate:"min=1,max=5"`
	MaxLength           int                 `json:"max_length" validate:"min=10,max=500"`
	IncludeQuickReplies bool                `json:"include_quick_replies"`
}

type Suggestion struct {
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	Intent       Intent  `json:"intent"`
	Tone         Tone    `json:"tone"`
	IsQuickReply bool    `json:"is_quick_reply"`
}

type Response struct {
	Suggestions      []Suggestion `json:"suggestions"`
	ContextSummary   string       `json:"context_summary"`
	ProcessingTimeMs float64      `json:"processing_time_ms"`
	ModelVersion     string       `json:"model_version"`
}

type QuickRequest struct {
	LastMessage string `json:"last_message" validate:"required,min=1,max=4000"`
	SenderName  string `json:"sender_name,omitempty"`
}

type QuickResponse struct {
	Replies []string `json:"replies"`
	Intent  Intent   `json:"intent"`
}
