package messages

import "time"

// Источник ответа чата.
const (
	ChatSourceAssistant = "assistant"
	ChatSourceFallback  = "fallback"
)

// ChatTurnLogged — аудит одного обработанного сообщения чата.
type ChatTurnLogged struct {
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	Source    string    `json:"source"`
	At        time.Time `json:"at"`
}

// TrackingLookupLogged — аудит обращения к трекингу.
type TrackingLookupLogged struct {
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CaseID         string    `json:"case_id,omitempty"`
	Staff          bool      `json:"staff"`
	Found          bool      `json:"found"`
	At             time.Time `json:"at"`
}
