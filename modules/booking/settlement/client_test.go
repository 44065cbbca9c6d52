package settlement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creator-ledger/core/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaySessionSendsExactAmount(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions/pay", r.URL.Path)
		assert.Equal(t, "Bearer relay-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"txHash": "0xabc"})
	}))
	defer srv.Close()

	client := NewClient(config.SettlementConfig{BaseURL: srv.URL + "/", APIKey: "relay-key", Timeout: time.Second})
	tx, err := client.PaySession(context.Background(), "b-1", "0x00000000000000000000000000000000000000c1", decimal.RequireFromString("3"))
	require.NoError(t, err)

	assert.Equal(t, "0xabc", tx)
	assert.Equal(t, map[string]any{
		"bookingId":      "b-1",
		"creatorAddress": "0x00000000000000000000000000000000000000c1",
		"totalUsd":       "3.00",
	}, got)
}

func TestPaySessionSurfacesRelayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "insufficient balance"})
	}))
	defer srv.Close()

	client := NewClient(config.SettlementConfig{BaseURL: srv.URL})
	_, err := client.PaySession(context.Background(), "b-1", "0xc1", decimal.RequireFromString("1.50"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestPaySessionRequiresTxHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(config.SettlementConfig{BaseURL: srv.URL}).PaySession(context.Background(), "b-1", "0xc1", decimal.NewFromInt(1))
	assert.Error(t, err)
}
