package payment

import "context"

type CardSummary struct {
	Brand string
	Last4 string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Card         CardSummary
	ChargeID     string
}

// Gateway is the external payment processor boundary. Implementations must
// not touch local storage; persisting the outcome is the payment service's
// job so gateway call and local write share one transaction.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	FetchIntent(ctx context.Context, intentID string) (*Intent, error)
	Refund(ctx context.Context, intentID string) error
}
