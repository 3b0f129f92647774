package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutClientTransfer(t *testing.T) {
	var got PayoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transfer", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(PayoutResponse{Success: true, TransferID: "t-1", Status: "COMPLETED"})
	}))
	defer srv.Close()

	client := NewPayoutClient(PayoutConfig{
		BaseURL:  srv.URL,
		Account:  "ticketchain",
		Password: "secret",
	})

	err := client.Transfer(context.Background(), "0xdeployer", 12500)
	require.NoError(t, err)

	assert.Equal(t, "ticketchain", got.Account)
	assert.Equal(t, "0xdeployer", got.Recipient)
	assert.Equal(t, int64(12500), got.Amount)
	assert.NotEmpty(t, got.Token)
}

func TestPayoutClientTransferRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(PayoutResponse{Success: false, Message: "recipient unknown"})
	}))
	defer srv.Close()

	client := NewPayoutClient(PayoutConfig{BaseURL: srv.URL, Account: "a", Password: "p"})

	err := client.Transfer(context.Background(), "0xdeployer", 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payout rejected")
}

func TestPayoutClientTokenDeterministic(t *testing.T) {
	client := NewPayoutClient(PayoutConfig{Account: "a", Password: "p"})

	t1 := client.generateToken(map[string]string{"Amount": "5", "Recipient": "r"})
	t2 := client.generateToken(map[string]string{"Recipient": "r", "Amount": "5"})
	assert.Equal(t, t1, t2)
	assert.Len(t, t1, 64)
}
