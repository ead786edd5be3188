package checkout

import (
    "context"

    "github.com/stripe/stripe-go/v80"
)

// Gateway é o contrato mínimo que este serviço exige do gateway de
// checkout hospedado. Implementado por services/checkout/stripegw em
// produção e por fakes nos testes.
type Gateway interface {
    CreateSession(ctx context.Context, params CreateSessionParams) (*stripe.CheckoutSession, error)
    RetrieveSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
}

type CreateSessionParams struct {
    Currency    string
    ProductName string
    UnitAmount  int64

    // PaymentTypes na ordem em que o gateway deve oferecê-los.
    PaymentTypes []string

    // PixExpiresAfter em segundos; zero omite as opções de PIX.
    PixExpiresAfter int64

    SuccessURL string
    CancelURL  string
    Metadata   map[string]string
}
