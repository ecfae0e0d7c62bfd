package openaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FocusWW/SiteAPI/internal/integrations/assistant"
	"github.com/pkg/errors"
)

const (
	apiVersion        = "2024-02-15-preview"
	defaultDeployment = "gpt-4o"

	maxTokens   = 500
	temperature = 0.7
)

// Client ходит в OpenAI-совместимый chat-completions endpoint
// (формат Azure-деплойментов: /openai/deployments/{name}/chat/completions).
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	httpc      *http.Client
}

func New(endpoint, apiKey, deployment string) *Client {
	if deployment == "" {
		deployment = defaultDeployment
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		deployment: deployment,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type completionReq struct {
	Model       string              `json:"model"`
	Messages    []assistant.Message `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type completionResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, msgs []assistant.Message) (string, error) {
	body, err := json.Marshal(completionReq{
		Model:       c.deployment,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("assistant api http %d", resp.StatusCode)
	}

	var r completionResp
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", errors.Wrap(err, "decode")
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("assistant api returned no choices")
	}

	return r.Choices[0].Message.Content, nil
}
