package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Ensure StripeSessionCreator satisfies SessionCreator at compile time.
var _ SessionCreator = (*StripeSessionCreator)(nil)

// StripeSessionCreator opens card-payment sessions through the Stripe API.
type StripeSessionCreator struct {
	api *client.API
}

// NewStripeSessionCreator returns a creator authenticated with secretKey.
// A nil backends uses Stripe's production endpoints.
func NewStripeSessionCreator(secretKey string, backends *stripe.Backends) *StripeSessionCreator {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeSessionCreator{api: api}
}

func (c *StripeSessionCreator) CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
