package payments

import "context"

// ProviderOrder is the charge request the payment provider creates before the
// applicant completes payment on the client.
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderProvider is implemented by the external payment gateway client. Amount
// is in the currency's minor units (paise for INR).
type OrderProvider interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error)
}
