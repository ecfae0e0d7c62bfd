package siteapi

import (
	"context"
	"time"

	"github.com/FocusWW/SiteAPI/internal/services/chat"
	"github.com/FocusWW/SiteAPI/internal/services/tracking"
	"github.com/go-chi/chi/v5"
)

// RateLimiter — необязательный лимитер сообщений чата.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// SiteAPI — HTTP-шлюз сайта: валидация входа, делегирование сервисам,
// трансляция исходов в статус-коды. Бизнес-решений здесь нет.
type SiteAPI struct {
	chat     *chat.Service
	tracking *tracking.Service

	limiter       RateLimiter
	chatRateLimit int64
}

func New(chatSvc *chat.Service, trackingSvc *tracking.Service) *SiteAPI {
	return &SiteAPI{chat: chatSvc, tracking: trackingSvc}
}

// WithChatRateLimit включает лимит сообщений чата на сессию в минуту.
func (a *SiteAPI) WithChatRateLimit(rl RateLimiter, perMinute int) *SiteAPI {
	a.limiter = rl
	a.chatRateLimit = int64(perMinute)
	return a
}

func (a *SiteAPI) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", a.submitChatMessage)
		r.Route("/track", func(r chi.Router) {
			r.Route("/staff", func(r chi.Router) {
				// Auth строго раньше любой другой валидации.
				r.Use(requirePrincipal)
				r.Get("/search", a.searchStaffTracking)
				r.Get("/{caseID}", a.getStaffTracking)
			})
			r.Get("/{trackingNumber}", a.getPublicTracking)
		})
	})
	return r
}
