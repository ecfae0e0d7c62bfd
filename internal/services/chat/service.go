package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/FocusWW/SiteAPI/internal/broker/messages"
	"github.com/FocusWW/SiteAPI/internal/integrations/assistant"
	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/google/uuid"
)

const systemPrompt = `You are FOCUS Assistant, the helpful AI assistant for FOCUS Logistics,
a global logistics and freight company. You help customers with:
- Tracking shipments (guide them to the Track page)
- Getting quotes (guide them to the Quote page)
- Information about services (Ocean Freight, Air Freight, Land Transport, Warehousing)
- General inquiries about shipping and logistics

Be professional, friendly, and concise. If you don't know something specific about their shipment,
guide them to contact the team or use the relevant page on the website.

Keep responses brief and helpful - aim for 2-3 sentences when possible.`

const (
	// Провайдеру уходит не больше 10 последних реплик истории.
	historyLimit = 10

	// Истёкший дедлайн провайдера равнозначен его отказу.
	completeTimeout = 10 * time.Second

	emptyCompletionReply = "I apologize, but I couldn't generate a response. Please try again."
)

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Service отвечает на сообщения чата: либо через AI-провайдера, либо
// заготовленной репликой по ключевым словам. Наружу отказ провайдера
// не виден никогда — поверхность чата всегда отвечает success:true.
type Service struct {
	ai assistant.Client // nil — провайдер не сконфигурирован

	producer   Producer
	auditTopic string
}

func New(ai assistant.Client, producer Producer, auditTopic string) *Service {
	return &Service{ai: ai, producer: producer, auditTopic: auditTopic}
}

func (s *Service) Reply(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, source := s.replyText(ctx, req)

	s.auditTurn(ctx, messages.ChatTurnLogged{
		SessionID: sessionID,
		Message:   req.Message,
		Reply:     reply,
		Source:    source,
	})

	return models.ChatResponse{
		Message:   reply,
		SessionID: sessionID,
		Success:   true,
	}, nil
}

func (s *Service) replyText(ctx context.Context, req models.ChatRequest) (string, string) {
	if s.ai == nil {
		return fallbackReply(req.Message), messages.ChatSourceFallback
	}

	msgs := make([]assistant.Message, 0, historyLimit+2)
	msgs = append(msgs, assistant.Message{Role: assistant.RoleSystem, Content: systemPrompt})

	history := req.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, turn := range history {
		msgs = append(msgs, assistant.Message{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs, assistant.Message{Role: assistant.RoleUser, Content: req.Message})

	callCtx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	content, err := s.ai.Complete(callCtx, msgs)
	if err != nil {
		slog.Warn("assistant call failed, using fallback reply", "err", err)
		return fallbackReply(req.Message), messages.ChatSourceFallback
	}
	if content == "" {
		return emptyCompletionReply, messages.ChatSourceAssistant
	}
	return content, messages.ChatSourceAssistant
}

func (s *Service) auditTurn(ctx context.Context, m messages.ChatTurnLogged) {
	if s.producer == nil || s.auditTopic == "" {
		return
	}
	m.At = time.Now().UTC()
	b, _ := json.Marshal(m)
	_ = s.producer.Publish(ctx, s.auditTopic, []byte(m.SessionID), b)
}
