package memory_repo

import (
	"context"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/develophasan/SlotyPi/internal/model"
)

// Store in-memory хранилище для запуска без PG_DSN и для тестов сервисов.
// Записи леджера внутри транзакции копятся в unitOfWork и видны только ей до commit
type Store struct {
	mu sync.RWMutex

	entries []model.LedgerEntry
	refs    map[refKey]struct{}

	payments  map[string]model.Payment
	users     map[string]model.User
	usersByPi map[string]string

	locksMu sync.Mutex
	locks   map[string]*userLock
}

// userLock семафор пользователя. refs - держатели и ожидающие, при нуле запись удаляется
type userLock struct {
	ch   chan struct{}
	refs int
}

type refKey struct {
	refType   string
	refID     string
	entryType model.EntryType
}

func New() *Store {
	return &Store{
		refs:      make(map[refKey]struct{}),
		payments:  make(map[string]model.Payment),
		users:     make(map[string]model.User),
		usersByPi: make(map[string]string),
		locks:     make(map[string]*userLock),
	}
}

type uowKey struct{}

type unitOfWork struct {
	entries []model.LedgerEntry
	ops     []func()
	held    map[string]*userLock
}

func fromContext(ctx context.Context) *unitOfWork {
	uow, _ := ctx.Value(uowKey{}).(*unitOfWork)
	return uow
}

func (s *Store) acquireLock(userID string) *userLock {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{ch: make(chan struct{}, 1)}
		s.locks[userID] = l
	}
	l.refs++
	return l
}

func (s *Store) releaseLock(userID string, l *userLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
}

type txManager struct {
	store *Store
}

// NewTxManager trm.Manager поверх Store. Вложенный Do присоединяется к внешней транзакции
func NewTxManager(store *Store) trm.Manager {
	return &txManager{store: store}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if fromContext(ctx) != nil {
		return fn(ctx)
	}

	uow := &unitOfWork{held: make(map[string]*userLock)}
	defer func() {
		for userID, l := range uow.held {
			<-l.ch
			m.store.releaseLock(userID, l)
		}
	}()

	if err := fn(context.WithValue(ctx, uowKey{}, uow)); err != nil {
		return err
	}
	return m.store.commit(uow)
}

func (m *txManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (s *Store) commit(uow *unitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range uow.entries {
		if _, dup := s.refs[keyOf(e)]; dup {
			return errDuplicate
		}
	}
	for _, e := range uow.entries {
		s.refs[keyOf(e)] = struct{}{}
		s.entries = append(s.entries, e)
	}
	for _, op := range uow.ops {
		op()
	}
	return nil
}

func keyOf(e model.LedgerEntry) refKey {
	return refKey{refType: e.RefType, refID: e.RefID, entryType: e.Type}
}
