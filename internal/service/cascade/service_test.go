package cascade

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/game"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
	"github.com/develophasan/SlotyPi/internal/repository/memory_repo"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/internal/service/ledger"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) PlayGame(bet int64) model.GameResult {
	args := m.Called(bet)
	return args.Get(0).(model.GameResult)
}

func (m *mockEngine) ProcessBonusPick(board model.BonusBoard, picks [3]int) (model.BonusPickOutcome, error) {
	args := m.Called(board, picks)
	return args.Get(0).(model.BonusPickOutcome), args.Error(1)
}

type gameConfig struct{}

func (gameConfig) Catalog() *game.Catalog { return game.DefaultCatalog() }
func (gameConfig) MaxBetCredits() int64   { return 10_000 }
func (gameConfig) HistoryMaxLimit() int   { return 200 }

type fixture struct {
	svc       service.CascadeService
	ledgerSvc service.LedgerService
	ledger    repository.LedgerRepository
}

func newFixture(t *testing.T, engine Engine) fixture {
	t.Helper()
	store := memory_repo.New()
	repo := memory_repo.NewLedgerRepository(store)
	tx := memory_repo.NewTxManager(store)
	ledgerSvc := ledger.NewLedgerService(gameConfig{}, repo, tx)
	return fixture{
		svc:       NewCascadeService(engine, ledgerSvc, tx),
		ledgerSvc: ledgerSvc,
		ledger:    repo,
	}
}

func (f fixture) deposit(t *testing.T, userID string, amount int64) {
	t.Helper()
	res, err := f.ledgerSvc.CreditExternalDeposit(context.Background(), userID, "pay-"+userID, amount, model.DepositMeta{})
	require.NoError(t, err)
	require.True(t, res.Credited)
}

var testBoard = model.BonusBoard{"JOKER", "50", "50", "10", "10", "10", "25", "100", "250", "JOKER", "25", "10"}

func TestSpin_WinningSpin(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(100)).Return(model.GameResult{
		Clusters:     []model.Cluster{{Symbol: "CHERRY"}},
		CascadeSteps: []model.CascadeStep{{Win: 250}},
		CascadeWin:   250,
		TotalWin:     250,
	})
	f := newFixture(t, engine)
	f.deposit(t, "u1", 1000)

	res, err := f.svc.Spin(context.Background(), model.CascadeSpin{UserID: "u1", BetCredits: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(100), res.BetCredits)
	assert.Equal(t, int64(250), res.WinCredits)
	assert.Equal(t, int64(1150), res.BalanceCredits)

	entries, err := f.ledger.FindByRef(context.Background(), "u1", model.RefSpin, res.SpinID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	engine.AssertExpectations(t)
}

func TestSpin_LosingSpinWritesOnlyBet(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(100)).Return(model.GameResult{})
	f := newFixture(t, engine)
	f.deposit(t, "u1", 1000)

	res, err := f.svc.Spin(context.Background(), model.CascadeSpin{UserID: "u1", BetCredits: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(900), res.BalanceCredits)

	entries, err := f.ledger.FindByRef(context.Background(), "u1", model.RefSpin, res.SpinID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EntryBet, entries[0].Type)
}

func TestSpin_Rejections(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", mock.Anything).Return(model.GameResult{TotalWin: 500})
	f := newFixture(t, engine)
	f.deposit(t, "u1", 50)
	ctx := context.Background()

	_, err := f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 0})
	assert.ErrorIs(t, err, model.ErrInvalidBet)

	_, err = f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 10_001})
	assert.ErrorIs(t, err, model.ErrBetTooLarge)
	engine.AssertNotCalled(t, "PlayGame", mock.Anything)

	_, err = f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 100})
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)

	// выигрыш отклоненного спина не зачислен
	balance, err := f.ledgerSvc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
}

func TestSpin_ConcurrentSpins(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(100)).Return(model.GameResult{})
	f := newFixture(t, engine)
	f.deposit(t, "u1", 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Spin(context.Background(), model.CascadeSpin{UserID: "u1", BetCredits: 100})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, model.ErrInsufficientBalance)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestBonusPick(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(10)).Return(model.GameResult{BonusTriggered: true, BonusBoard: testBoard})
	engine.On("ProcessBonusPick", testBoard, [3]int{0, 1, 2}).
		Return(model.BonusPickOutcome{Win: 50, Matched: []string{"50", "50", "JOKER"}}, nil)
	f := newFixture(t, engine)
	f.deposit(t, "u1", 100)
	ctx := context.Background()

	spin, err := f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 10})
	require.NoError(t, err)
	require.True(t, spin.Game.BonusTriggered)

	res, err := f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.BonusWin)
	assert.Equal(t, []string{"50", "50", "JOKER"}, res.Matched)
	assert.Equal(t, int64(140), res.BalanceCredits)

	_, err = f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 1, 2}})
	assert.ErrorIs(t, err, model.ErrBonusAlreadyResolved)

	entries, err := f.ledger.FindByRef(ctx, "u1", model.RefBonusPick, spin.SpinID+"_bonus")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EntryBonusPayout, entries[0].Type)
}

func TestBonusPick_NoWinStillResolvesBoard(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(10)).Return(model.GameResult{BonusTriggered: true, BonusBoard: testBoard})
	engine.On("ProcessBonusPick", testBoard, [3]int{0, 9, 3}).
		Return(model.BonusPickOutcome{Matched: []string{"JOKER", "JOKER", "10"}}, nil)
	f := newFixture(t, engine)
	f.deposit(t, "u1", 100)
	ctx := context.Background()

	spin, err := f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 10})
	require.NoError(t, err)

	res, err := f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 9, 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.BonusWin)
	assert.Equal(t, int64(90), res.BalanceCredits)

	_, err = f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 9, 3}})
	assert.ErrorIs(t, err, model.ErrBonusAlreadyResolved)
}

// racingLedger коммитит чужую выплату бонуса сразу после вставки в транзакции
type racingLedger struct {
	repository.LedgerRepository
	raced bool
}

func (r *racingLedger) Insert(ctx context.Context, entry *model.LedgerEntry) error {
	if err := r.LedgerRepository.Insert(ctx, entry); err != nil {
		return err
	}
	if entry.Type != model.EntryBonusPayout || r.raced {
		return nil
	}
	r.raced = true
	competing := *entry
	competing.ID = "competing"
	return r.LedgerRepository.Insert(context.Background(), &competing)
}

func TestBonusPick_ConflictOnCommit(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(10)).Return(model.GameResult{BonusTriggered: true, BonusBoard: testBoard})
	engine.On("ProcessBonusPick", testBoard, [3]int{0, 1, 2}).
		Return(model.BonusPickOutcome{Win: 50, Matched: []string{"50", "50", "JOKER"}}, nil)

	store := memory_repo.New()
	tx := memory_repo.NewTxManager(store)
	racing := &racingLedger{LedgerRepository: memory_repo.NewLedgerRepository(store)}
	ledgerSvc := ledger.NewLedgerService(gameConfig{}, racing, tx)
	svc := NewCascadeService(engine, ledgerSvc, tx)
	ctx := context.Background()

	res, err := ledgerSvc.CreditExternalDeposit(ctx, "u1", "pay-u1", 100, model.DepositMeta{})
	require.NoError(t, err)
	require.True(t, res.Credited)

	spin, err := svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 10})
	require.NoError(t, err)

	_, err = svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 1, 2}})
	assert.ErrorIs(t, err, model.ErrBonusAlreadyResolved)

	entries, err := racing.FindByRef(ctx, "u1", model.RefBonusPick, spin.SpinID+"_bonus")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "competing", entries[0].ID)
}

func TestBonusPick_Failures(t *testing.T) {
	engine := &mockEngine{}
	engine.On("PlayGame", int64(10)).Return(model.GameResult{})
	f := newFixture(t, engine)
	f.deposit(t, "u1", 100)
	ctx := context.Background()

	_, err := f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: "spin_x", Picks: [3]int{0, 0, 1}})
	assert.ErrorIs(t, err, model.ErrInvalidPicks)

	_, err = f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: "spin_x", Picks: [3]int{0, 1, 12}})
	assert.ErrorIs(t, err, model.ErrInvalidPicks)

	_, err = f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: "spin_x", Picks: [3]int{0, 1, 2}})
	assert.ErrorIs(t, err, model.ErrSpinNotFound)

	spin, err := f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 10})
	require.NoError(t, err)
	_, err = f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: spin.SpinID, Picks: [3]int{0, 1, 2}})
	assert.ErrorIs(t, err, model.ErrNoBonusBoard)

	engine.AssertNotCalled(t, "ProcessBonusPick", mock.Anything, mock.Anything)
}

func TestSpin_RealEngineKeepsLedgerConsistent(t *testing.T) {
	engine := game.NewEngine(game.DefaultCatalog(), game.NewSeededSource(99))
	f := newFixture(t, engine)
	f.deposit(t, "u1", 100_000)
	ctx := context.Background()

	expected := int64(100_000)
	for i := 0; i < 100; i++ {
		res, err := f.svc.Spin(ctx, model.CascadeSpin{UserID: "u1", BetCredits: 20})
		require.NoError(t, err)
		expected += res.WinCredits - 20
		require.Equal(t, expected, res.BalanceCredits)

		if res.Game.BonusTriggered {
			pick, err := f.svc.BonusPick(ctx, model.BonusPick{UserID: "u1", SpinID: res.SpinID, Picks: [3]int{0, 5, 11}})
			require.NoError(t, err)
			expected += pick.BonusWin
			require.Equal(t, expected, pick.BalanceCredits)
		}
	}

	balance, err := f.ledgerSvc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, expected, balance)
}
