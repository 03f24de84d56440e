package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create intent: %w", err)
	}
	return fromPaymentIntent(pi), nil
}

func (g *StripeGateway) FetchIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: fetch intent %s: %w", intentID, err)
	}
	return fromPaymentIntent(pi), nil
}

func (g *StripeGateway) Refund(ctx context.Context, intentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	ref, err := g.api.Refunds.New(params)
	if err != nil {
		return fmt.Errorf("stripe: refund intent %s: %w", intentID, err)
	}
	if ref.Status == stripe.RefundStatusFailed || ref.Status == stripe.RefundStatusCanceled {
		return fmt.Errorf("stripe: refund %s ended in status %s", ref.ID, ref.Status)
	}
	return nil
}

func fromPaymentIntent(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
	if ch := pi.LatestCharge; ch != nil {
		intent.ChargeID = ch.ID
		if ch.PaymentMethodDetails != nil && ch.PaymentMethodDetails.Card != nil {
			intent.Card = CardSummary{
				Brand: string(ch.PaymentMethodDetails.Card.Brand),
				Last4: ch.PaymentMethodDetails.Card.Last4,
			}
		}
	}
	return intent
}
