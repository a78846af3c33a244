package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	apperrors "shopbot/internal/errors"
)

// Client wraps the Bot API transport behind the narrow surface the rest of
// the application consumes. All sends are synchronous calls to the Telegram
// HTTP API.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewClient(token string, logger *zap.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperrors.NewTransportError("connecting to bot api failed", err)
	}

	logger.Info("bot authorized", zap.String("username", api.Self.UserName))

	return &Client{api: api, logger: logger}, nil
}

// WebhookPath returns the route updates are delivered on. Keeping the token
// in the path is the standard way to make the endpoint unguessable.
func WebhookPath(token string) string {
	return "/bot" + token
}

// RegisterWebhook points Telegram at publicURL for update delivery. The bot
// serves traffic regardless of the outcome; a failure here only means updates
// will not arrive until the webhook is registered out of band.
func (c *Client) RegisterWebhook(publicURL string) error {
	wh, err := tgbotapi.NewWebhook(publicURL + WebhookPath(c.api.Token))
	if err != nil {
		return apperrors.NewTransportError("building webhook config failed", err)
	}
	wh.AllowedUpdates = []string{"message", "callback_query"}

	if _, err := c.api.Request(wh); err != nil {
		return apperrors.NewTransportError("registering webhook failed", err)
	}

	c.logger.Info("webhook registered", zap.String("url", publicURL+"/bot***"))
	return nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return apperrors.NewTransportError("sending message failed", err)
	}
	return nil
}

// Web-app keyboards predate the pinned library's types, so the markup is
// declared here and handed to the API as-is; ReplyMarkup is marshalled
// straight to JSON, only the wire tags matter.

type webAppInfo struct {
	URL string `json:"url"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

func webAppKeyboard(buttonText, buttonURL string) inlineKeyboard {
	return inlineKeyboard{
		InlineKeyboard: [][]webAppButton{{
			{Text: buttonText, WebApp: webAppInfo{URL: buttonURL}},
		}},
	}
}

func (c *Client) SendMessageWithWebAppButton(ctx context.Context, chatID int64, text, buttonText, buttonURL string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = webAppKeyboard(buttonText, buttonURL)
	if _, err := c.api.Send(msg); err != nil {
		return apperrors.NewTransportError("sending message with web app button failed", err)
	}
	return nil
}

// SendPhoto delivers an image by URL with an optional caption. Telegram
// fetches the URL itself, so the QR service must be reachable from its side.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	msg.Caption = caption
	if _, err := c.api.Send(msg); err != nil {
		return apperrors.NewTransportError("sending photo failed", err)
	}
	return nil
}

func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := c.api.Send(msg); err != nil {
		return apperrors.NewTransportError("editing message failed", err)
	}
	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = showAlert
	if _, err := c.api.Request(cb); err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("answering callback %s failed", callbackID), err)
	}
	return nil
}
