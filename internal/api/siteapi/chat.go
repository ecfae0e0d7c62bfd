package siteapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
)

const chatRateWindow = time.Minute

func chatError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ChatResponse{Success: false, Error: msg})
}

func (a *SiteAPI) submitChatMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		chatError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	var req *models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		chatError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req == nil {
		chatError(w, http.StatusBadRequest, "Request body is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		chatError(w, http.StatusBadRequest, "Message is required")
		return
	}

	if !a.allowChat(r, req.SessionID) {
		chatError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	resp, err := a.chat.Reply(r.Context(), *req)
	if err != nil {
		slog.Error("chat reply failed", "err", err)
		chatError(w, http.StatusInternalServerError, "An error occurred processing your request")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// allowChat проверяет лимит сообщений на сессию. Отказ самого лимитера
// пропускает запрос: деградация хранилища не должна ронять чат.
func (a *SiteAPI) allowChat(r *http.Request, sessionID string) bool {
	if a.limiter == nil || a.chatRateLimit <= 0 {
		return true
	}
	key := sessionID
	if key == "" {
		key = r.RemoteAddr
	}
	ok, _, err := a.limiter.Allow(r.Context(), "chat:"+key, a.chatRateLimit, chatRateWindow)
	if err != nil {
		slog.Warn("chat rate limiter unavailable", "err", err)
		return true
	}
	return ok
}
