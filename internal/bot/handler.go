package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopbot/internal/domain"
	"shopbot/internal/dto"
	apperrors "shopbot/internal/errors"
	"shopbot/internal/order/usecase"

	"go.uber.org/zap"
)

const errorReply = "❌ Произошла ошибка. Попробуйте позже."

// Gateway is the outbound half of the messaging transport, implemented by the
// Telegram client.
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithWebAppButton(ctx context.Context, chatID int64, text, buttonText, buttonURL string) error
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
}

type SessionStore interface {
	GetOrCreate(userID int64, displayName string) domain.Session
	Get(userID int64) (domain.Session, bool)
	SetCart(userID int64, cart []domain.CartLine)
}

type RateGate interface {
	Allow(userID int64) bool
}

type OrderProcessor interface {
	Process(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error)
}

// Inbound events, one type per contract message.

type StartCommand struct {
	UserID      int64
	ChatID      int64
	DisplayName string
}

type WebAppData struct {
	UserID int64
	ChatID int64
	Data   string
}

type CallbackPress struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	Data       string
}

// Handler reacts to inbound chat events. Every entry point rate-gates first;
// throttled users are dropped without a reply, same as the original bot.
type Handler struct {
	gateway       Gateway
	sessions      SessionStore
	gate          RateGate
	orders        OrderProcessor
	webAppURL     string
	reminderDelay time.Duration
	logger        *zap.Logger
}

func NewHandler(
	gateway Gateway,
	sessions SessionStore,
	gate RateGate,
	orders OrderProcessor,
	webAppURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		gateway:       gateway,
		sessions:      sessions,
		gate:          gate,
		orders:        orders,
		webAppURL:     webAppURL,
		reminderDelay: 2 * time.Second,
		logger:        logger,
	}
}

func (h *Handler) HandleStart(ctx context.Context, ev StartCommand) {
	if !h.gate.Allow(ev.UserID) {
		h.logger.Debug("start throttled", zap.Int64("userId", ev.UserID))
		return
	}

	sess := h.sessions.GetOrCreate(ev.UserID, ev.DisplayName)

	cartCount := domain.CartItemCount(sess.Cart)
	text := welcomeMessage(cartCount)
	buttonURL := fmt.Sprintf("%s?userId=%d", h.webAppURL, ev.UserID)

	if err := h.gateway.SendMessageWithWebAppButton(ctx, ev.ChatID, text, "🛍 Каталог", buttonURL); err != nil {
		h.logger.Error("sending welcome failed", zap.Int64("userId", ev.UserID), zap.Error(err))
		return
	}

	if cartCount > 0 {
		h.scheduleCartReminder(ev.ChatID, ev.UserID, len(sess.Cart), "🛍 Каталог", buttonURL)
	}
}

func (h *Handler) HandleWebAppData(ctx context.Context, ev WebAppData) {
	if !h.gate.Allow(ev.UserID) {
		h.logger.Debug("web app data throttled", zap.Int64("userId", ev.UserID))
		return
	}

	payload, err := ParseWebAppPayload(ev.Data)
	if err != nil {
		h.logger.Warn("malformed web app payload", zap.Int64("userId", ev.UserID), zap.Error(err))
		h.reply(ctx, ev.ChatID, errorReply)
		return
	}

	switch payload.Action {
	case ActionOrder:
		h.handleOrder(ctx, ev, payload.Order)
	case ActionSaveCart:
		h.sessions.SetCart(ev.UserID, dto.CartToDomain(payload.Cart))
		h.logger.Debug("cart saved", zap.Int64("userId", ev.UserID), zap.Int("lines", len(payload.Cart)))
	case ActionGetUserData:
		h.sendUserData(ctx, ev)
	case ActionUnknown:
		h.logger.Warn("unknown web app action",
			zap.Int64("userId", ev.UserID), zap.String("action", payload.Raw))
	}
}

// HandleCallback acknowledges button presses so clients stop their spinners.
func (h *Handler) HandleCallback(ctx context.Context, ev CallbackPress) {
	if err := h.gateway.AnswerCallback(ctx, ev.CallbackID, "", false); err != nil {
		h.logger.Error("answering callback failed", zap.String("callbackId", ev.CallbackID), zap.Error(err))
	}
}

func (h *Handler) handleOrder(ctx context.Context, ev WebAppData, req *dto.OrderRequest) {
	result, err := h.orders.Process(ctx, usecase.ProcessOrderCommand{
		UserID:         ev.UserID,
		ChatID:         ev.ChatID,
		Lines:          dto.CartToDomain(req.Cart),
		Contact:        req.UserData.ToDomain(),
		DeliveryMethod: req.DeliveryMethod,
	})
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			h.reply(ctx, ev.ChatID, ve.Message)
			return
		}
		h.logger.Error("order processing failed", zap.Int64("userId", ev.UserID), zap.Error(err))
		h.reply(ctx, ev.ChatID, errorReply)
		return
	}

	h.logger.Info("order processed from chat",
		zap.Int64("userId", ev.UserID),
		zap.String("orderId", string(result.OrderID)),
		zap.String("status", result.Status))
}

func (h *Handler) sendUserData(ctx context.Context, ev WebAppData) {
	sess, ok := h.sessions.Get(ev.UserID)
	if !ok || sess.Contact == nil {
		return
	}

	reply, err := json.Marshal(map[string]interface{}{
		"action": "userData",
		"data":   sess.Contact,
	})
	if err != nil {
		h.logger.Error("encoding user data failed", zap.Int64("userId", ev.UserID), zap.Error(err))
		return
	}
	h.reply(ctx, ev.ChatID, string(reply))
}

// scheduleCartReminder nudges the user about a non-empty cart shortly after
// the welcome. Fire-and-forget; the delayed send outlives the update context.
func (h *Handler) scheduleCartReminder(chatID, userID int64, lineCount int, buttonText, buttonURL string) {
	text := fmt.Sprintf("⚠️ У вас есть товары в корзине!\nКоличество: %d товаров\n⏰ Доступность товаров ограничена по времени.", lineCount)
	time.AfterFunc(h.reminderDelay, func() {
		if err := h.gateway.SendMessageWithWebAppButton(context.Background(), chatID, text, buttonText, buttonURL); err != nil {
			h.logger.Error("sending cart reminder failed", zap.Int64("userId", userID), zap.Error(err))
		}
	})
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.gateway.SendMessage(ctx, chatID, text); err != nil {
		h.logger.Error("sending reply failed", zap.Int64("chatId", chatID), zap.Error(err))
	}
}

func welcomeMessage(cartCount int) string {
	msg := `🎉 Добро Пожаловать!

🏆 Лучший Табачный Магазин

Нажмите кнопку "Каталог" чтобы начать покупки.`
	if cartCount > 0 {
		msg += fmt.Sprintf("\n\n🛒 У вас есть %d товаров в корзине!\n⏰ Доступность товаров ограничена по времени.", cartCount)
	}
	return msg
}
