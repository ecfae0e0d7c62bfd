package assistant

import "context"

// Роли сообщений chat-completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client — chat-completion провайдер. Возвращает текст ответа ассистента.
type Client interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}
