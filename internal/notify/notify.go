// Package notify delivers rendered notifications to chat channels.
package notify

import "context"

// SendOptions carries per-message rendering hints.
type SendOptions struct {
	ParseMode   string       `json:"parse_mode,omitempty"`
	ReplyMarkup *ReplyMarkup `json:"reply_markup,omitempty"`
}

// ReplyMarkup is an inline keyboard attached to a message.
type ReplyMarkup struct {
	InlineKeyboard [][]InlineButton `json:"inline_keyboard"`
}

// InlineButton is one inline keyboard button.
type InlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// Notifier is the delivery capability the zone dispatcher consumes.
// Implementations must be safe for concurrent use; the dispatcher fans out
// across zones in parallel.
type Notifier interface {
	// SendText delivers a text message to a chat address.
	SendText(ctx context.Context, chatID, text string, opts *SendOptions) error
	// SendLocation delivers a location pin to a chat address.
	SendLocation(ctx context.Context, chatID string, latitude, longitude float64) error
}
