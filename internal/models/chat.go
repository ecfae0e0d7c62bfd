package models

// Роли реплик в истории диалога.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatTurn — одна реплика диалога.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest — запрос виджета чата.
type ChatRequest struct {
	Message   string     `json:"message"`
	History   []ChatTurn `json:"history"`
	SessionID string     `json:"sessionId,omitempty"`
}

// ChatResponse — ответ чата.
// Success=false зарезервирован за ошибками валидации на шлюзе:
// деградация AI-провайдера наружу не видна, Message заполнен всегда.
type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
