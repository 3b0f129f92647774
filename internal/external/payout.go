package external

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"
)

// PayoutClient transfers the ledger balance to the administrator through an
// external payout gateway. It implements ledger.FundSink: any gateway
// failure aborts the withdrawal.
type PayoutClient struct {
	baseURL    string
	account    string
	password   string
	httpClient *http.Client
}

type PayoutConfig struct {
	BaseURL  string
	Account  string
	Password string
	Timeout  time.Duration
}

type PayoutRequest struct {
	Account   string `json:"account"`
	Token     string `json:"token"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

type PayoutResponse struct {
	Success    bool   `json:"success"`
	TransferID string `json:"transferId"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

func NewPayoutClient(cfg PayoutConfig) *PayoutClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &PayoutClient{
		baseURL:  cfg.BaseURL,
		account:  cfg.Account,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// generateToken builds the gateway request token: SHA-256 over the request
// parameter values concatenated in alphabetical key order.
func (pc *PayoutClient) generateToken(params map[string]string) string {
	params["Account"] = pc.account
	params["Password"] = pc.password

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var concatenated string
	for _, k := range keys {
		concatenated += params[k]
	}

	hash := sha256.Sum256([]byte(concatenated))
	return hex.EncodeToString(hash[:])
}

// Transfer sends the amount to the recipient through the gateway.
func (pc *PayoutClient) Transfer(ctx context.Context, recipient string, amount int64) error {
	token := pc.generateToken(map[string]string{
		"Amount":    strconv.FormatInt(amount, 10),
		"Recipient": recipient,
	})

	reqBody := PayoutRequest{
		Account:   pc.account,
		Token:     token,
		Recipient: recipient,
		Amount:    amount,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal payout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.baseURL+"/transfer", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create payout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payout request failed: %w", err)
	}
	defer resp.Body.Close()

	var payoutResp PayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&payoutResp); err != nil {
		return fmt.Errorf("failed to decode payout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !payoutResp.Success {
		return fmt.Errorf("payout rejected: status %d, %s", resp.StatusCode, payoutResp.Message)
	}

	return nil
}
