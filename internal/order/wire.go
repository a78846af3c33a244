package order

import (
	"path/filepath"

	"shopbot/internal/config"
	"shopbot/internal/order/controller"
	"shopbot/internal/order/repository"
	"shopbot/internal/order/service"
	"shopbot/internal/order/usecase"
	"shopbot/internal/payment"
	"shopbot/internal/region"
	"shopbot/internal/session"

	"go.uber.org/zap"
)

// NewModule assembles the order pipeline: file-backed counter, validator,
// notifier, the routing use case, and its HTTP controller.
func NewModule(
	cfg *config.Config,
	sessions *session.Store,
	classifier *region.Classifier,
	sender service.MessageSender,
	logger *zap.Logger,
) (*controller.Controller, *usecase.ProcessOrderUseCase, error) {
	counter, err := repository.NewFileCounterRepository(
		filepath.Join(cfg.Storage.DataDir, "orderCounter.json"), logger)
	if err != nil {
		return nil, nil, err
	}

	qr := payment.NewQRBuilder(cfg.Payment.Receiver, cfg.Payment.Account, cfg.Payment.BIC)
	notifier := service.NewNotifier(sender, qr, cfg.Bot.AdminID, cfg.Bot.ManagerEmail, logger)

	uc := usecase.NewProcessOrderUseCase(
		sessions,
		counter,
		classifier,
		service.NewCartValidator(),
		notifier,
		logger,
	)

	return controller.NewController(uc, logger), uc, nil
}
