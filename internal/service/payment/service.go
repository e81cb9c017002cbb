package payment

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/develophasan/SlotyPi/internal/client/pi"
	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/repository"
	"github.com/develophasan/SlotyPi/internal/service"
)

// PiPayments часть Pi Platform API, нужная платежам
type PiPayments interface {
	ApprovePayment(ctx context.Context, paymentID string) (*pi.Payment, error)
	CompletePayment(ctx context.Context, paymentID, txID string) (*pi.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*pi.Payment, error)
}

type serv struct {
	pi          PiPayments
	piConfig    config.PiConfig
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	ledger      service.LedgerService
	txManager   trm.Manager
}

func NewPaymentService(
	piClient PiPayments,
	cfg config.PiConfig,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	ledger service.LedgerService,
	txManager trm.Manager,
) service.PaymentService {
	return &serv{
		pi:          piClient,
		piConfig:    cfg,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		ledger:      ledger,
		txManager:   txManager,
	}
}
