package pi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/model"
)

type piConfig struct {
	base string
}

func (c piConfig) APIBase() string            { return c.base }
func (c piConfig) ServerAPIKey() string       { return "server-key" }
func (c piConfig) HTTPTimeout() time.Duration { return time.Second }
func (c piConfig) MeCacheSize() int           { return 16 }
func (c piConfig) MeCacheTTL() time.Duration  { return time.Minute }
func (c piConfig) CreditsPerPi() int64        { return 100 }

const paymentJSON = `{
  "identifier": "pay_123",
  "user_uid": "uid-1",
  "amount": 1.5,
  "memo": "credits",
  "metadata": {"kind": "deposit"},
  "direction": "user_to_app",
  "network": "Pi Testnet",
  "status": {
    "developer_approved": true,
    "transaction_verified": true,
    "developer_completed": true,
    "cancelled": false,
    "user_cancelled": false
  },
  "transaction": {"txid": "tx-9", "verified": true, "_link": "https://example"}
}`

func TestClient_MeIsCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"uid":"uid-1","username":"pioneer"}`))
	}))
	defer srv.Close()

	c := NewClient(piConfig{base: srv.URL})
	ctx := context.Background()

	me, err := c.Me(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", me.UID)
	assert.Equal(t, "pioneer", me.Username)

	_, err = c.Me(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Me(ctx, "bad-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestClient_Payments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Key server-key", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/payments/pay_123/approve":
		case r.Method == http.MethodPost && r.URL.Path == "/payments/pay_123/complete":
			var body struct {
				TxID string `json:"txid"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "tx-9", body.TxID)
		case r.Method == http.MethodGet && r.URL.Path == "/payments/pay_123":
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(paymentJSON))
	}))
	defer srv.Close()

	c := NewClient(piConfig{base: srv.URL})
	ctx := context.Background()

	p, err := c.ApprovePayment(ctx, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", p.Identifier)

	p, err = c.CompletePayment(ctx, "pay_123", "tx-9")
	require.NoError(t, err)
	assert.Equal(t, "tx-9", p.TxID())

	p, err = c.GetPayment(ctx, "pay_123")
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, model.DirectionU2A, p.Direction)
	assert.True(t, p.Status.DeveloperCompleted)
	assert.JSONEq(t, `{"kind":"deposit"}`, string(p.Metadata))

	_, err = c.GetPayment(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrPiUnavailable)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(piConfig{base: base}).GetPayment(context.Background(), "pay_1")
	assert.ErrorIs(t, err, model.ErrPiUnavailable)
}
