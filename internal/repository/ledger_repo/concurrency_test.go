package ledger_repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/game"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository/user_repo"
	"github.com/develophasan/SlotyPi/internal/service"
	ledgerService "github.com/develophasan/SlotyPi/internal/service/ledger"
)

type gameConfig struct{}

func (gameConfig) Catalog() *game.Catalog { return game.DefaultCatalog() }
func (gameConfig) MaxBetCredits() int64   { return 10_000 }
func (gameConfig) HistoryMaxLimit() int   { return 200 }

type concurrencyFixture struct {
	svc service.LedgerService
	tx  trm.Manager
}

func newConcurrencyFixture(t *testing.T, pool *pgxpool.Pool) concurrencyFixture {
	t.Helper()
	txManager, err := manager.New(trmpgx.NewDefaultFactory(pool))
	require.NoError(t, err)
	return concurrencyFixture{
		svc: ledgerService.NewLedgerService(gameConfig{}, NewLedgerRepository(pool), txManager),
		tx:  txManager,
	}
}

func newPioneer(t *testing.T, pool *pgxpool.Pool, piUID string) string {
	t.Helper()
	user, err := user_repo.NewUserRepository(pool).UpsertByPiUID(context.Background(), &model.User{PiUID: piUID, Username: piUID})
	require.NoError(t, err)
	return user.ID
}

func TestConcurrentSpins_Postgres(t *testing.T) {
	pool := setupPool(t)
	f := newConcurrencyFixture(t, pool)
	ctx := context.Background()
	userID := newPioneer(t, pool, "pi-concurrent-spin")

	res, err := f.svc.CreditExternalDeposit(ctx, userID, "pay-concurrent-spin", 100, model.DepositMeta{})
	require.NoError(t, err)
	require.True(t, res.Credited)

	const workers = 2
	var (
		wg           sync.WaitGroup
		start        = make(chan struct{})
		successCount int32
		rejectCount  int32
		errs         = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.RecordSpin(ctx, userID, 100, model.SpinMeta{})
			switch {
			case err == nil:
				atomic.AddInt32(&successCount, 1)
			case errors.Is(err, model.ErrInsufficientBalance):
				atomic.AddInt32(&rejectCount, 1)
			default:
				errs <- err
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, int32(1), successCount, "only one spin should be accepted")
	assert.Equal(t, int32(1), rejectCount, "the other spin should see the drained balance")

	balance, err := f.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestConcurrentDepositCredit_Postgres(t *testing.T) {
	pool := setupPool(t)
	f := newConcurrencyFixture(t, pool)
	ctx := context.Background()
	userID := newPioneer(t, pool, "pi-concurrent-deposit")

	const (
		workers = 10
		amount  = int64(250)
	)
	var (
		wg            sync.WaitGroup
		start         = make(chan struct{})
		creditedCount int32
		doneCount     int32
		errs          = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := f.svc.CreditExternalDeposit(ctx, userID, "pay-concurrent-deposit", amount, model.DepositMeta{})
			if err != nil {
				errs <- err
				return
			}
			switch {
			case res.Credited:
				atomic.AddInt32(&creditedCount, 1)
			case res.Reason == model.CreditAlreadyDone:
				atomic.AddInt32(&doneCount, 1)
			default:
				errs <- fmt.Errorf("unexpected reason %q", res.Reason)
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, int32(1), creditedCount, "deposit should be credited exactly once")
	assert.Equal(t, int32(workers-1), doneCount)

	balance, err := f.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, amount, balance)
}

func TestConcurrentBonusPayout_Postgres(t *testing.T) {
	pool := setupPool(t)
	f := newConcurrencyFixture(t, pool)
	ctx := context.Background()
	userID := newPioneer(t, pool, "pi-concurrent-bonus")

	res, err := f.svc.CreditExternalDeposit(ctx, userID, "pay-concurrent-bonus", 100, model.DepositMeta{})
	require.NoError(t, err)
	require.True(t, res.Credited)

	board := model.BonusBoard{"10", "10", "10", "25", "50", "JOKER", "10", "25", "50", "100", "250", "JOKER"}
	spinID, err := f.svc.RecordSpin(ctx, userID, 10, model.SpinMeta{BonusTriggered: true, BonusBoard: board})
	require.NoError(t, err)

	const workers = 2
	var (
		wg            sync.WaitGroup
		start         = make(chan struct{})
		resolvedCount int32
		rejectCount   int32
		errs          = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// так же, как выбор в бонусе: поле и выплата в одной транзакции под блокировкой
			err := f.tx.Do(ctx, func(txCtx context.Context) error {
				if _, err := f.svc.FindBonusBoard(txCtx, userID, spinID); err != nil {
					return err
				}
				return f.svc.RecordBonusPayout(txCtx, userID, spinID, 30, model.BonusMeta{})
			})
			switch {
			case err == nil:
				atomic.AddInt32(&resolvedCount, 1)
			case errors.Is(err, model.ErrBonusAlreadyResolved):
				atomic.AddInt32(&rejectCount, 1)
			default:
				errs <- err
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, int32(1), resolvedCount)
	assert.Equal(t, int32(1), rejectCount)

	balance, err := f.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100-10+30), balance)
}

func TestConcurrentBonusPayout_WithoutLock_Postgres(t *testing.T) {
	pool := setupPool(t)
	f := newConcurrencyFixture(t, pool)
	ctx := context.Background()
	userID := newPioneer(t, pool, "pi-concurrent-bonus-raw")

	const workers = 2
	var (
		wg          sync.WaitGroup
		start       = make(chan struct{})
		okCount     int32
		rejectCount int32
		errs        = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := f.svc.RecordBonusPayout(ctx, userID, "spin_raw", 0, model.BonusMeta{})
			switch {
			case err == nil:
				atomic.AddInt32(&okCount, 1)
			case errors.Is(err, model.ErrBonusAlreadyResolved):
				atomic.AddInt32(&rejectCount, 1)
			default:
				errs <- err
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, int32(1), okCount)
	assert.Equal(t, int32(1), rejectCount, "unique ref index should reject the second payout")
}
