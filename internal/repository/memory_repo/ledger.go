package memory_repo

import (
	"context"
	"sort"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

var errDuplicate = repository.ErrDuplicateEntry

type ledgerRepo struct {
	store *Store
}

func NewLedgerRepository(store *Store) repository.LedgerRepository {
	return &ledgerRepo{store: store}
}

// LockUser вне транзакции ничего не делает, как pg_advisory_xact_lock в autocommit
func (r *ledgerRepo) LockUser(ctx context.Context, userID string) error {
	uow := fromContext(ctx)
	if uow == nil {
		return nil
	}
	if _, ok := uow.held[userID]; ok {
		return nil
	}

	l := r.store.acquireLock(userID)
	select {
	case l.ch <- struct{}{}:
		uow.held[userID] = l
		return nil
	case <-ctx.Done():
		r.store.releaseLock(userID, l)
		return ctx.Err()
	}
}

func (r *ledgerRepo) Insert(ctx context.Context, entry *model.LedgerEntry) error {
	e := *entry
	e.Metadata = append([]byte(nil), entry.Metadata...)

	uow := fromContext(ctx)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, dup := r.store.refs[keyOf(e)]; dup {
		return errDuplicate
	}
	if uow == nil {
		r.store.refs[keyOf(e)] = struct{}{}
		r.store.entries = append(r.store.entries, e)
		return nil
	}

	for _, p := range uow.entries {
		if keyOf(p) == keyOf(e) {
			return errDuplicate
		}
	}
	uow.entries = append(uow.entries, e)
	return nil
}

func (r *ledgerRepo) SumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	for _, e := range r.visible(ctx) {
		if e.UserID == userID {
			sum += e.AmountCredits
		}
	}
	return sum, nil
}

func (r *ledgerRepo) FindByRef(ctx context.Context, userID, refType, refID string) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range r.visible(ctx) {
		if e.UserID == userID && e.RefType == refType && e.RefID == refID {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *ledgerRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range r.visible(ctx) {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// visible закоммиченные записи плюс записи текущей транзакции
func (r *ledgerRepo) visible(ctx context.Context) []model.LedgerEntry {
	r.store.mu.RLock()
	out := make([]model.LedgerEntry, len(r.store.entries))
	copy(out, r.store.entries)
	r.store.mu.RUnlock()

	if uow := fromContext(ctx); uow != nil {
		out = append(out, uow.entries...)
	}
	return out
}

func sortNewestFirst(entries []model.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}
