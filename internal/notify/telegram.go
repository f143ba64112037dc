package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultTelegramAPI = "https://api.telegram.org"

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
}

// NewTelegram creates a Telegram notifier. apiBase may be empty to use the
// public Bot API endpoint; transport-level retries are handled by the
// retrying client.
func NewTelegram(token, apiBase string) *Telegram {
	if apiBase == "" {
		apiBase = defaultTelegramAPI
	}
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return &Telegram{http: c, baseURL: apiBase, token: token}
}

type sendMessageRequest struct {
	ChatID      string       `json:"chat_id"`
	Text        string       `json:"text"`
	ParseMode   string       `json:"parse_mode,omitempty"`
	ReplyMarkup *ReplyMarkup `json:"reply_markup,omitempty"`
}

type sendLocationRequest struct {
	ChatID    string  `json:"chat_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendText implements Notifier.
func (t *Telegram) SendText(ctx context.Context, chatID, text string, opts *SendOptions) error {
	req := sendMessageRequest{ChatID: chatID, Text: text}
	if opts != nil {
		req.ParseMode = opts.ParseMode
		req.ReplyMarkup = opts.ReplyMarkup
	}
	return t.call(ctx, "sendMessage", req)
}

// SendLocation implements Notifier.
func (t *Telegram) SendLocation(ctx context.Context, chatID string, latitude, longitude float64) error {
	return t.call(ctx, "sendLocation", sendLocationRequest{
		ChatID:    chatID,
		Latitude:  latitude,
		Longitude: longitude,
	})
}

func (t *Telegram) call(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: marshal: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode, raw)
	}
	if !api.OK {
		return fmt.Errorf("telegram %s: %s", method, api.Description)
	}
	return nil
}
