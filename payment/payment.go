// Package payment wraps the external payment collaborator. Tokenization, PCI
// handling and charge confirmation all live with the provider; this package
// only creates intents and reads back their status.
package payment

import "context"

type Status string

const (
	StatusRequiresPaymentMethod Status = "requires_payment_method"
	StatusProcessing            Status = "processing"
	StatusSucceeded             Status = "succeeded"
	StatusCanceled              Status = "canceled"
)

// Intent is the provider's handle for an in-progress charge authorization.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Status       Status `json:"status"`
}

type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	// ConfirmResult reports the provider's current status for an intent.
	// Confirmation itself is driven entirely by the collaborator.
	ConfirmResult(ctx context.Context, intentID string) (Status, error)
}
