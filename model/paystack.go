package model

import "encoding/json"

type PaystackConfig struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
}

type InitializeRequest struct {
	Email       string          `json:"email"`
	Amount      int64           `json:"amount"` // kobo
	Reference   string          `json:"reference"`
	Currency    string          `json:"currency"`
	CallbackURL string          `json:"callback_url,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyData struct {
	Status    string `json:"status"` // success, failed, abandoned...
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

// WebhookEvent is the signed payload Paystack pushes to the webhook URL.
type WebhookEvent struct {
	Event string `json:"event"` // charge.success, charge.failed...
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Slug string `json:"slug"`
}
