package memory_repo

import (
	"context"
	"time"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

type paymentRepo struct {
	store *Store
}

func NewPaymentRepository(store *Store) repository.PaymentRepository {
	return &paymentRepo{store: store}
}

func (r *paymentRepo) Upsert(_ context.Context, p *model.Payment) (*model.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	saved := *p
	if existing, ok := r.store.payments[p.PiPaymentID]; ok {
		saved.UserID = existing.UserID
		saved.LedgerEntryID = existing.LedgerEntryID
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.LedgerEntryID = ""
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	r.store.payments[p.PiPaymentID] = saved

	out := saved
	return &out, nil
}

func (r *paymentRepo) GetByPiPaymentID(_ context.Context, piPaymentID string) (*model.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments[piPaymentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// LinkLedgerEntry внутри транзакции применяется при commit
func (r *paymentRepo) LinkLedgerEntry(ctx context.Context, piPaymentID, entryID string) error {
	r.store.mu.RLock()
	_, ok := r.store.payments[piPaymentID]
	r.store.mu.RUnlock()
	if !ok {
		return repository.ErrNotFound
	}

	link := func() {
		p := r.store.payments[piPaymentID]
		p.LedgerEntryID = entryID
		p.UpdatedAt = time.Now().UTC()
		r.store.payments[piPaymentID] = p
	}

	if uow := fromContext(ctx); uow != nil {
		uow.ops = append(uow.ops, link)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	link()
	return nil
}
