package domain

// EffectKind represents the type of outbound chat action produced by a transition
type EffectKind string

const (
	// EffectKindSendMessage - Send a text message, optionally with an inline keyboard
	EffectKindSendMessage EffectKind = "send_message"
	// EffectKindAnswerCallback - Answer a callback query
	EffectKindAnswerCallback EffectKind = "answer_callback"
)

// InlineOption represents one inline keyboard button (display text -> callback payload)
type InlineOption struct {
	Text    string
	Payload string
}

// Effect represents an intended chat side effect
type Effect struct {
	Kind    EffectKind
	ChatID  string
	Text    string
	Options []InlineOption // EffectKindSendMessage only
	QueryID string         // EffectKindAnswerCallback only
	Alert   bool           // EffectKindAnswerCallback only
}

// SendMessage creates a send message effect
func SendMessage(chatID, text string, options ...InlineOption) Effect {
	return Effect{
		Kind:    EffectKindSendMessage,
		ChatID:  chatID,
		Text:    text,
		Options: options,
	}
}

// AnswerCallback creates an answer callback effect
func AnswerCallback(queryID, text string, alert bool) Effect {
	return Effect{
		Kind:    EffectKindAnswerCallback,
		Text:    text,
		QueryID: queryID,
		Alert:   alert,
	}
}
