package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"event_ticketing/config"
	"event_ticketing/model"
)

// Paystack is the boundary client for the external payment gateway. It only
// knows initialize, verify, webhook signatures and the bank directory; all
// reservation state lives on our side.
type Paystack struct {
	Config model.PaystackConfig
	hc     *http.Client
}

func NewPaystack() *Paystack {
	baseURL := config.Config("PAYSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Paystack{
		Config: model.PaystackConfig{
			SecretKey:   config.Config("PAYSTACK_SECRET_KEY"),
			BaseURL:     baseURL,
			CallbackURL: config.Config("APP_URL") + "/payment/callback",
		},
		hc: &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (p *Paystack) call(method, path string, body any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, p.Config.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.Config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if resp.StatusCode >= 400 || !envelope.Status {
		return nil, fmt.Errorf("gateway rejected request: %s", envelope.Message)
	}
	return envelope.Data, nil
}

// InitializeTransaction opens a hosted-checkout session for a reference and
// returns the redirect handle the customer completes payment on.
func (p *Paystack) InitializeTransaction(req model.InitializeRequest) (*model.InitializeData, error) {
	if req.Currency == "" {
		req.Currency = "NGN"
	}
	if req.CallbackURL == "" {
		req.CallbackURL = p.Config.CallbackURL
	}

	data, err := p.call(http.MethodPost, "/transaction/initialize", req)
	if err != nil {
		return nil, err
	}

	var out model.InitializeData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTransaction asks the gateway for the authoritative status of a
// reference. A returned error means the call itself failed and nothing can
// be concluded about the payment.
func (p *Paystack) VerifyTransaction(reference string) (*model.VerifyData, error) {
	data, err := p.call(http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var out model.VerifyData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidWebhookSignature checks the HMAC-SHA512 body signature Paystack sends
// in x-paystack-signature. Payloads must never be trusted before this.
func (p *Paystack) ValidWebhookSignature(body []byte, signature string) bool {
	h := hmac.New(sha512.New, []byte(p.Config.SecretKey))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ListBanks fetches the gateway bank directory used to resolve organizer
// settlement bank codes.
func (p *Paystack) ListBanks() ([]model.Bank, error) {
	data, err := p.call(http.MethodGet, "/bank?currency=NGN", nil)
	if err != nil {
		return nil, err
	}

	var banks []model.Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}
