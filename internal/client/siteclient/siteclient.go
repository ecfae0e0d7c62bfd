package siteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/pkg/errors"
)

const (
	transportFailureReply = "I'm sorry, something went wrong. Please try again."
	badResponseReply      = "I'm having trouble connecting right now. Please try again in a moment."

	principalHeader = "X-MS-CLIENT-PRINCIPAL"
)

// Client — фасад над HTTP API сайта для встраивающих приложений.
// Сессия чата передаётся явно: вызывающий отдаёт последний известный
// sessionId и забирает следующий из ответа. Полей с неявным состоянием
// у фасада нет.
type Client struct {
	baseURL   string
	principal string
	http      *http.Client
}

type Option func(*Client)

// WithPrincipal проставляет маркер аутентификации на staff-запросы.
// В обычном деплое это делает фронт аутентификации, не клиент.
func WithPrincipal(principal string) Option {
	return func(c *Client) { c.principal = principal }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage отправляет реплику чата. Ошибок наружу не бывает: любой
// сбой транспорта или сервера превращается в заготовленное извинение с
// success:false, а sessionId при этом остаётся прежним.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string, history []models.ChatTurn) models.ChatResponse {
	req := models.ChatRequest{
		Message:   message,
		History:   history,
		SessionID: sessionID,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return canned(transportFailureReply, sessionID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return canned(transportFailureReply, sessionID)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		slog.Warn("chat request failed", "err", err)
		return canned(transportFailureReply, sessionID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return canned(badResponseReply, sessionID)
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return canned(badResponseReply, sessionID)
	}
	return out
}

func canned(reply, sessionID string) models.ChatResponse {
	return models.ChatResponse{
		Message:   reply,
		SessionID: sessionID,
		Success:   false,
	}
}

// PublicTracking возвращает (nil, nil) на 404: отсутствие записи — не
// ошибка. Ошибка означает "спросить не смогли".
func (c *Client) PublicTracking(ctx context.Context, trackingNumber string) (*models.PublicTrackingView, error) {
	resp, err := c.get(ctx, "/api/track/"+url.PathEscape(trackingNumber))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Errorf("tracking lookup: unexpected status %d", resp.StatusCode)
	}

	var view models.PublicTrackingView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, errors.Wrap(err, "decode tracking response")
	}
	return &view, nil
}

// StaffTracking повторяет контракт исходного UI-сервиса: любой
// неуспешный статус схлопывается в (nil, nil).
func (c *Client) StaffTracking(ctx context.Context, caseID string) (*models.StaffTrackingView, error) {
	resp, err := c.get(ctx, "/api/track/staff/"+url.PathEscape(caseID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var view models.StaffTrackingView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, errors.Wrap(err, "decode staff tracking response")
	}
	return &view, nil
}

func (c *Client) StaffSearch(ctx context.Context, query string) ([]models.StaffTrackingView, error) {
	resp, err := c.get(ctx, "/api/track/staff/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("staff search: unexpected status %d", resp.StatusCode)
	}

	var found []models.StaffTrackingView
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, errors.Wrap(err, "decode staff search response")
	}
	return found, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if c.principal != "" {
		req.Header.Set(principalHeader, c.principal)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	return resp, nil
}
