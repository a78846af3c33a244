package service

import (
	"context"
	"fmt"
	"strings"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"

	"go.uber.org/zap"
)

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error
}

type PaymentQR interface {
	ImageURL(amount int64) string
}

// Notifier formats and sends the order-closing messages: the structured
// summary for the operator, the acknowledgement for local customers, and the
// QR payment instructions for remote ones.
type Notifier struct {
	sender       MessageSender
	qr           PaymentQR
	adminChatID  int64
	managerEmail string
	logger       *zap.Logger
}

func NewNotifier(sender MessageSender, qr PaymentQR, adminChatID int64, managerEmail string, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:       sender,
		qr:           qr,
		adminChatID:  adminChatID,
		managerEmail: managerEmail,
		logger:       logger,
	}
}

func (n *Notifier) NotifyManager(ctx context.Context, order domain.Order) error {
	if err := n.sender.SendMessage(ctx, n.adminChatID, formatManagerMessage(order)); err != nil {
		return apperrors.NewTransportError("sending manager notification", err)
	}
	n.logger.Debug("manager notified", zap.String("orderId", string(order.ID)))
	return nil
}

func (n *Notifier) AckCustomer(ctx context.Context, chatID int64, orderID domain.OrderID) error {
	text := fmt.Sprintf(`✅ Заказ %s принят!

С вами в ближайшее время свяжется менеджер для выставления счёта.

📧 Email: %s`, orderID, n.managerEmail)

	if err := n.sender.SendMessage(ctx, chatID, text); err != nil {
		return apperrors.NewTransportError("sending customer acknowledgement", err)
	}
	return nil
}

func (n *Notifier) SendPaymentInstructions(ctx context.Context, chatID int64, order domain.Order) error {
	caption := fmt.Sprintf(`Добрый день! Пожалуйста, прочитайте всю информацию до конца ‼️‼️‼️👇🏻👇🏻👇🏻

Заказ %s подтвержден.
Предварительная дата отправки вашего заказа: через 3-7 дней!
Сроки могут сдвигаться от 1 до 7 дней!

(Рассылка трек номеров в течении 2х дней после отправки!)

‼️ВНИМАНИЕ❗️ВАЖНО‼️
После оплаты заказа ОТПРАВЬТЕ ЧЕК на почту: %s
и в письме УКАЖИТЕ НОМЕР ЗАКАЗА!!!

🚫ПИСЬМО С ЧЕКОМ ДОСТАТОЧНО ОТПРАВИТЬ ОДИН РАЗ‼️‼️
(не нужно присылать один и тот же чек несколько раз!)

📌В КОММЕНТАРИЯХ К ПЛАТЕЖУ НИЧЕГО ПИСАТЬ НЕ НУЖНО‼️‼️‼️

Сумма к оплате: %d руб.

(!ВАЖНО! НЕ ДЕЛАТЬ проверочные платежи 1,2,3, 10 рублей!!! Вводите полную сумму!)`,
		order.ID, n.managerEmail, order.TotalAmount)

	if err := n.sender.SendPhoto(ctx, chatID, n.qr.ImageURL(order.TotalAmount), caption); err != nil {
		return apperrors.NewTransportError("sending payment instructions", err)
	}
	return nil
}

func formatManagerMessage(order domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📦 НОВЫЙ ЗАКАЗ %s\n\n", order.ID)
	fmt.Fprintf(&b, "👤 Клиент:\nФИО: %s\nТелефон: %s\nEmail: %s\nГород: %s\nАдрес: %s\n\n",
		order.Contact.FullName, order.Contact.Phone, order.Contact.Email,
		order.Contact.City, order.Contact.Address)

	b.WriteString("🛒 Состав заказа:\n")
	for _, line := range order.Lines {
		unit := "шт"
		if line.Unit == domain.UnitWeight {
			unit = "г"
		}
		fmt.Fprintf(&b, "• %s - %d %s x %d₽ = %d₽\n",
			line.Name, line.Quantity, unit, line.Price, line.LineTotal())
	}

	fmt.Fprintf(&b, "\n💰 Итого: %d₽\n🚚 Доставка: %s\n", order.TotalAmount, order.DeliveryMethod)

	comment := order.Contact.Comment
	if comment == "" {
		comment = "Нет"
	}
	fmt.Fprintf(&b, "\nКомментарий: %s", comment)

	return b.String()
}
