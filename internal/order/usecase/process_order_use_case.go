package usecase

import (
	"context"

	"shopbot/internal/domain"

	"go.uber.org/zap"
)

type SessionStore interface {
	SetContactProfile(userID int64, profile domain.ContactProfile)
	ClearCart(userID int64)
}

type CounterRepository interface {
	Allocate() (domain.OrderID, error)
}

type RegionClassifier interface {
	Classify(city string) domain.Region
}

type CartValidator interface {
	ValidateOrder(lines []domain.CartLine, contact domain.ContactProfile) error
}

type OrderNotifier interface {
	NotifyManager(ctx context.Context, order domain.Order) error
	AckCustomer(ctx context.Context, chatID int64, orderID domain.OrderID) error
	SendPaymentInstructions(ctx context.Context, chatID int64, order domain.Order) error
}

type ProcessOrderCommand struct {
	UserID int64
	// ChatID is where customer-facing replies go. Zero means the order came
	// in over HTTP without a chat; customer sends are skipped then.
	ChatID         int64
	Lines          []domain.CartLine
	Contact        domain.ContactProfile
	DeliveryMethod string
}

type OrderResult struct {
	OrderID     domain.OrderID
	Region      domain.Region
	Status      string
	TotalAmount int64
	// Delivered reports whether the branch's primary outbound send succeeded.
	// Sends are at-most-once: a false value still means the order id was
	// burned and the cart cleared.
	Delivered bool
}

// ProcessOrderUseCase runs an order from submission to close: validate,
// allocate a number, save the contact profile, then route by region — a
// local order goes to the manager, a remote one gets payment instructions.
type ProcessOrderUseCase struct {
	sessions   SessionStore
	counter    CounterRepository
	classifier RegionClassifier
	validator  CartValidator
	notifier   OrderNotifier
	logger     *zap.Logger
}

func NewProcessOrderUseCase(
	sessions SessionStore,
	counter CounterRepository,
	classifier RegionClassifier,
	validator CartValidator,
	notifier OrderNotifier,
	logger *zap.Logger,
) *ProcessOrderUseCase {
	return &ProcessOrderUseCase{
		sessions:   sessions,
		counter:    counter,
		classifier: classifier,
		validator:  validator,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *ProcessOrderUseCase) Process(ctx context.Context, cmd ProcessOrderCommand) (*OrderResult, error) {
	uc.logger.Info("order received",
		zap.Int64("userId", cmd.UserID),
		zap.Int("lineCount", len(cmd.Lines)))

	// Validation failures allocate nothing and touch no session state.
	if err := uc.validator.ValidateOrder(cmd.Lines, cmd.Contact); err != nil {
		uc.logger.Warn("order rejected", zap.Int64("userId", cmd.UserID), zap.Error(err))
		return nil, err
	}

	orderID, err := uc.counter.Allocate()
	if err != nil {
		uc.logger.Error("order number allocation failed", zap.Int64("userId", cmd.UserID), zap.Error(err))
		return nil, err
	}

	uc.sessions.SetContactProfile(cmd.UserID, cmd.Contact)

	order := domain.Order{
		ID:             orderID,
		UserID:         cmd.UserID,
		Lines:          append([]domain.CartLine(nil), cmd.Lines...),
		Contact:        cmd.Contact,
		DeliveryMethod: cmd.DeliveryMethod,
		TotalAmount:    domain.CartSubtotal(cmd.Lines) + domain.DeliverySurcharge(cmd.DeliveryMethod),
		Region:         uc.classifier.Classify(cmd.Contact.City),
	}

	// Cleanup is unconditional: delivery is at-most-once and a failed send
	// must not leave the order resubmittable from a stale cart.
	defer uc.sessions.ClearCart(cmd.UserID)

	result := &OrderResult{
		OrderID:     orderID,
		Region:      order.Region,
		TotalAmount: order.TotalAmount,
		Delivered:   true,
	}

	switch order.Region {
	case domain.RegionLocal:
		result.Status = domain.OrderStatusNotifiedManager
		if err := uc.notifier.NotifyManager(ctx, order); err != nil {
			result.Delivered = false
			uc.logger.Error("manager notification failed",
				zap.String("orderId", string(orderID)), zap.Error(err))
		}
		if cmd.ChatID != 0 {
			if err := uc.notifier.AckCustomer(ctx, cmd.ChatID, orderID); err != nil {
				uc.logger.Error("customer acknowledgement failed",
					zap.String("orderId", string(orderID)), zap.Error(err))
			}
		}
	default:
		result.Status = domain.OrderStatusPaymentIssued
		if cmd.ChatID == 0 {
			result.Delivered = false
			uc.logger.Warn("remote order without a chat, payment instructions not sent",
				zap.String("orderId", string(orderID)))
			break
		}
		if err := uc.notifier.SendPaymentInstructions(ctx, cmd.ChatID, order); err != nil {
			result.Delivered = false
			uc.logger.Error("payment instructions failed",
				zap.String("orderId", string(orderID)), zap.Error(err))
		}
	}

	uc.logger.Info("order closed",
		zap.String("orderId", string(orderID)),
		zap.String("status", result.Status),
		zap.Int64("total", result.TotalAmount),
		zap.Bool("delivered", result.Delivered))

	return result, nil
}
