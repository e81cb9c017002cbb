package pi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/metrics"
	"github.com/develophasan/SlotyPi/internal/model"
)

const maxErrorBody = 512

// Client клиент Pi Platform API. /me авторизуется токеном пользователя,
// платежи - серверным ключом приложения
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	meCache *expirable.LRU[string, Me]
}

func NewClient(cfg config.PiConfig) *Client {
	return &Client{
		baseURL: cfg.APIBase(),
		apiKey:  cfg.ServerAPIKey(),
		http:    &http.Client{Timeout: cfg.HTTPTimeout()},
		meCache: expirable.NewLRU[string, Me](cfg.MeCacheSize(), nil, cfg.MeCacheTTL()),
	}
}

// Me - пользователь по access token из Pi SDK. Невалидный токен - model.ErrUnauthorized
func (c *Client) Me(ctx context.Context, accessToken string) (*Me, error) {
	key := tokenKey(accessToken)
	if me, ok := c.meCache.Get(key); ok {
		return &me, nil
	}

	var me Me
	err := c.do(ctx, http.MethodGet, "/me", "/me", nil, "Bearer "+accessToken, &me)
	if err != nil {
		return nil, err
	}
	if me.UID == "" {
		return nil, model.ErrUnauthorized
	}

	c.meCache.Add(key, me)
	return &me, nil
}

func (c *Client) ApprovePayment(ctx context.Context, paymentID string) (*Payment, error) {
	var p Payment
	path := "/payments/" + url.PathEscape(paymentID) + "/approve"
	if err := c.do(ctx, http.MethodPost, path, "/payments/approve", struct{}{}, c.keyAuth(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CompletePayment(ctx context.Context, paymentID, txID string) (*Payment, error) {
	var p Payment
	path := "/payments/" + url.PathEscape(paymentID) + "/complete"
	body := struct {
		TxID string `json:"txid"`
	}{TxID: txID}
	if err := c.do(ctx, http.MethodPost, path, "/payments/complete", body, c.keyAuth(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var p Payment
	path := "/payments/" + url.PathEscape(paymentID)
	if err := c.do(ctx, http.MethodGet, path, "/payments", nil, c.keyAuth(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) keyAuth() string {
	return "Key " + c.apiKey
}

// do выполняет запрос. label - путь без id для метрик и логов
func (c *Client) do(ctx context.Context, method, path, label string, in any, auth string, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal pi request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build pi request: %w", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		metrics.PiAPIErrors.WithLabelValues(label).Inc()
		return fmt.Errorf("%w: %s %s: %v", model.ErrPiUnavailable, method, label, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized && label == "/me" {
		return model.ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		metrics.PiAPIErrors.WithLabelValues(label).Inc()
		log.Warn().
			Str("method", method).
			Str("path", label).
			Int("status", res.StatusCode).
			Str("body", string(snippet)).
			Msg("pi api error")
		return fmt.Errorf("%w: %s %s: status %d", model.ErrPiUnavailable, method, label, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		metrics.PiAPIErrors.WithLabelValues(label).Inc()
		return fmt.Errorf("%w: decode %s: %v", model.ErrPiUnavailable, label, err)
	}
	return nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
