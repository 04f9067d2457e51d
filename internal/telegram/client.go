// Package telegram delivers alert messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"heatindex-alert/internal/transport"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends messages as a single bot to one chat per call.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Telegram client for the given bot token.
func NewClient(client *http.Client, token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		client:  client,
		circuit: transport.NewBreaker("telegram"),
	}
}

// NewClientWithBaseURL is like NewClient with an explicit API root, used by
// tests.
func NewClientWithBaseURL(client *http.Client, token, baseURL string) *Client {
	c := NewClient(client, token)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// sendMessageRequest is the Bot API sendMessage payload. Link previews are
// suppressed so long station names do not unfurl into page cards.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send delivers an HTML-formatted message to one chat. A failure is returned
// as-is; the caller decides whether it aborts the run.
func (c *Client) Send(ctx context.Context, chatID, html string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  html,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
		req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := transport.Do(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("telegram send to chat %s: %w", chatID, err)
	}
	resp.Body.Close()
	return nil
}
