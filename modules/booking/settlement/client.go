// Package settlement talks to the payment relay that moves funds on-chain for a session.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creator-ledger/core/config"
	"creator-ledger/core/logger"

	"github.com/shopspring/decimal"
)

// Settler pays the creator for a booked session and returns the transaction hash.
type Settler interface {
	PaySession(ctx context.Context, bookingID, creatorAddress string, totalUSD decimal.Decimal) (string, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.SettlementConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type payRequest struct {
	BookingID      string `json:"bookingId"`
	CreatorAddress string `json:"creatorAddress"`
	TotalUSD       string `json:"totalUsd"`
}

type payResponse struct {
	TxHash string `json:"txHash"`
	Error  string `json:"error"`
}

func (c *Client) PaySession(ctx context.Context, bookingID, creatorAddress string, totalUSD decimal.Decimal) (string, error) {
	body, err := json.Marshal(payRequest{
		BookingID:      bookingID,
		CreatorAddress: creatorAddress,
		TotalUSD:       totalUSD.StringFixed(2),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sessions/pay", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("SettlementClient:PaySession:Do", "booking_id", bookingID, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out payResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return "", fmt.Errorf("decode settlement response: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("settlement relay returned %d: %s", resp.StatusCode, msg)
	}
	if out.TxHash == "" {
		return "", fmt.Errorf("settlement relay returned no transaction hash")
	}
	return out.TxHash, nil
}
