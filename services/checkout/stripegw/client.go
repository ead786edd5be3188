package stripegw

import (
    "context"

    "github.com/stripe/stripe-go/v80"
    "github.com/stripe/stripe-go/v80/checkout/session"

    "doar-payment-api/services/checkout"
)

// Client implementa checkout.Gateway sobre a API de Checkout Sessions
// da Stripe. A chave fica no client em vez da global stripe.Key, então
// fakes e o client real convivem nos testes.
type Client struct {
    sessions session.Client
}

func NewClient(secretKey string) *Client {
    return &Client{
        sessions: session.Client{
            B:   stripe.GetBackend(stripe.APIBackend),
            Key: secretKey,
        },
    }
}

func (c *Client) CreateSession(ctx context.Context, p checkout.CreateSessionParams) (*stripe.CheckoutSession, error) {
    params := &stripe.CheckoutSessionParams{
        Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
        PaymentMethodTypes: stripe.StringSlice(p.PaymentTypes),
        LineItems: []*stripe.CheckoutSessionLineItemParams{
            {
                PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
                    Currency:   stripe.String(p.Currency),
                    UnitAmount: stripe.Int64(p.UnitAmount),
                    ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
                        Name: stripe.String(p.ProductName),
                    },
                },
                Quantity: stripe.Int64(1),
            },
        },
        SuccessURL: stripe.String(p.SuccessURL),
        CancelURL:  stripe.String(p.CancelURL),
    }
    params.Context = ctx

    if p.PixExpiresAfter > 0 {
        params.PaymentMethodOptions = &stripe.CheckoutSessionPaymentMethodOptionsParams{
            Pix: &stripe.CheckoutSessionPaymentMethodOptionsPixParams{
                ExpiresAfterSeconds: stripe.Int64(p.PixExpiresAfter),
            },
        }
    }

    for key, value := range p.Metadata {
        params.AddMetadata(key, value)
    }

    return c.sessions.New(params)
}

func (c *Client) RetrieveSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
    params := &stripe.CheckoutSessionParams{}
    params.Context = ctx
    params.AddExpand("payment_intent")
    return c.sessions.Get(id, params)
}
