package cascade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/middleware"
	"github.com/develophasan/SlotyPi/internal/model"
)

type servMock struct {
	mock.Mock
}

func (m *servMock) Spin(ctx context.Context, req model.CascadeSpin) (*model.CascadeSpinResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*model.CascadeSpinResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *servMock) BonusPick(ctx context.Context, req model.BonusPick) (*model.BonusPickResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*model.BonusPickResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func request(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/spin", strings.NewReader(body))
	return r.WithContext(middleware.WithUserID(r.Context(), "user-1"))
}

func TestSpin(t *testing.T) {
	serv := &servMock{}
	h := NewHandler(HandlerDeps{Serv: serv})

	var grid model.Grid
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = "CHERRY"
		}
	}
	serv.On("Spin", mock.Anything, model.CascadeSpin{UserID: "user-1", BetCredits: 10}).Return(&model.CascadeSpinResult{
		SpinID:         "spin_01",
		BetCredits:     10,
		WinCredits:     0,
		BalanceCredits: 90,
		Game: model.GameResult{
			InitialGrid: grid,
			FinalGrid:   grid,
		},
	}, nil).Once()

	w := httptest.NewRecorder()
	h.Spin(w, request(`{"betCredits":10}`))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "spin_01", body["spinId"])
	assert.EqualValues(t, 90, body["balanceCredits"])

	game := body["gameResult"].(map[string]any)
	assert.Len(t, game["initialGrid"], model.GridRows)
	assert.Len(t, game["initialGrid"].([]any)[0], model.GridCols)
	assert.Equal(t, []any{}, game["multipliers"])
	assert.Equal(t, []any{}, game["clusters"])
	assert.Nil(t, game["bonusBoard"])
	assert.Equal(t, false, game["cascadeCapReached"])

	serv.AssertExpectations(t)
}

func TestSpin_RejectsMalformedBet(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &servMock{}})

	for _, body := range []string{
		`{"betCredits":1.5}`,
		`{"betCredits":"ten"}`,
		`{"betCredits":"100"}`,
		`{"betCredits":null}`,
		`{"betCredits":true}`,
		`{"betCredits":1e2}`,
		`{}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		h.Spin(w, request(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"INVALID_BET"}`, w.Body.String(), body)
	}
}

func TestSpin_ServiceError(t *testing.T) {
	serv := &servMock{}
	serv.On("Spin", mock.Anything, mock.Anything).Return(nil, model.ErrInsufficientBalance).Once()
	h := NewHandler(HandlerDeps{Serv: serv})

	w := httptest.NewRecorder()
	h.Spin(w, request(`{"betCredits":500}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"INSUFFICIENT_BALANCE"}`, w.Body.String())
}

func TestSpin_RequiresUser(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &servMock{}})

	w := httptest.NewRecorder()
	h.Spin(w, httptest.NewRequest(http.MethodPost, "/api/spin", strings.NewReader(`{"betCredits":10}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBonusPick(t *testing.T) {
	serv := &servMock{}
	serv.On("BonusPick", mock.Anything, model.BonusPick{UserID: "user-1", SpinID: "spin_01", Picks: [3]int{0, 5, 11}}).
		Return(&model.BonusPickResult{BonusWin: 50, Matched: []string{"50", "50", "JOKER"}, BalanceCredits: 140}, nil).Once()
	serv.On("BonusPick", mock.Anything, model.BonusPick{UserID: "user-1", SpinID: "spin_01", Picks: [3]int{1, 2, 3}}).
		Return(nil, model.ErrBonusAlreadyResolved).Once()
	h := NewHandler(HandlerDeps{Serv: serv})

	w := httptest.NewRecorder()
	h.BonusPick(w, request(`{"spinId":"spin_01","picks":[0,5,11]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bonusWin":50,"matched":["50","50","JOKER"],"balanceCredits":140}`, w.Body.String())

	w = httptest.NewRecorder()
	h.BonusPick(w, request(`{"spinId":"spin_01","picks":[1,2,3]}`))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	h.BonusPick(w, request(`{"spinId":"spin_01","picks":[1,2]}`))
	assert.JSONEq(t, `{"error":"INVALID_PICKS"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.BonusPick(w, request(`{"picks":[1,2,3]}`))
	assert.JSONEq(t, `{"error":"INVALID_REQUEST"}`, w.Body.String())

	serv.AssertExpectations(t)
}
