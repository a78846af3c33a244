package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shopbot/internal/bot"
)

// UpdateHandler is the inbound half of the messaging transport; the bot
// package implements it.
type UpdateHandler interface {
	HandleStart(ctx context.Context, ev bot.StartCommand)
	HandleWebAppData(ctx context.Context, ev bot.WebAppData)
	HandleCallback(ctx context.Context, ev bot.CallbackPress)
}

// Inbound update shapes are declared locally: the pinned library's Update
// predates web-app messages and has no web_app_data field, and only the
// handful of fields dispatched on are needed anyway.

type update struct {
	UpdateID      int            `json:"update_id"`
	Message       *message       `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type message struct {
	MessageID  int         `json:"message_id"`
	From       *user       `json:"from"`
	Chat       chat        `json:"chat"`
	Text       string      `json:"text"`
	WebAppData *webAppData `json:"web_app_data"`
}

type user struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

type chat struct {
	ID int64 `json:"id"`
}

type webAppData struct {
	Data       string `json:"data"`
	ButtonText string `json:"button_text"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *message `json:"message"`
}

// command extracts the bot command from the message text: "/start" and
// "/start@ShopBot" both yield "start".
func (m *message) command() string {
	if !strings.HasPrefix(m.Text, "/") {
		return ""
	}
	cmd := strings.SplitN(m.Text, " ", 2)[0][1:]
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd
}

// Webhook translates raw Telegram updates into bot events. It always answers
// 200 for well-formed updates, handled or not, so Telegram does not redeliver.
type Webhook struct {
	handler UpdateHandler
	logger  *zap.Logger
}

func NewWebhook(handler UpdateHandler, logger *zap.Logger) *Webhook {
	return &Webhook{handler: handler, logger: logger}
}

func (w *Webhook) HandleUpdate(rw http.ResponseWriter, r *http.Request) {
	var upd update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		w.logger.Warn("malformed update", zap.Error(err))
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	w.dispatch(r.Context(), upd)
	rw.WriteHeader(http.StatusOK)
}

func (w *Webhook) dispatch(ctx context.Context, upd update) {
	switch {
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		ev := bot.CallbackPress{CallbackID: cb.ID, Data: cb.Data}
		if cb.Message != nil {
			ev.ChatID = cb.Message.Chat.ID
			ev.MessageID = cb.Message.MessageID
		}
		w.handler.HandleCallback(ctx, ev)

	case upd.Message != nil && upd.Message.From != nil:
		msg := upd.Message
		switch {
		case msg.WebAppData != nil:
			w.handler.HandleWebAppData(ctx, bot.WebAppData{
				UserID: msg.From.ID,
				ChatID: msg.Chat.ID,
				Data:   msg.WebAppData.Data,
			})
		case msg.command() == "start":
			w.handler.HandleStart(ctx, bot.StartCommand{
				UserID:      msg.From.ID,
				ChatID:      msg.Chat.ID,
				DisplayName: msg.From.FirstName,
			})
		default:
			w.logger.Debug("ignoring update",
				zap.Int64("userId", msg.From.ID), zap.String("text", msg.Text))
		}

	default:
		w.logger.Debug("ignoring update without message", zap.Int("updateId", upd.UpdateID))
	}
}
