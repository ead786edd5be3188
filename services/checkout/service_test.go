package checkout

import (
    "context"
    "errors"
    "math"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "github.com/stripe/stripe-go/v80"

    "doar-payment-api/models"
)

type fakeGateway struct {
    createCalls   int
    retrieveCalls int
    lastParams    CreateSessionParams
    session       *stripe.CheckoutSession
    err           error
}

func (f *fakeGateway) CreateSession(ctx context.Context, params CreateSessionParams) (*stripe.CheckoutSession, error) {
    f.createCalls++
    f.lastParams = params
    if f.err != nil {
        return nil, f.err
    }
    return f.session, nil
}

func (f *fakeGateway) RetrieveSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
    f.retrieveCalls++
    if f.err != nil {
        return nil, f.err
    }
    return f.session, nil
}

func newTestService(gw Gateway) *Service {
    return NewService(gw, "https://doar.example.org", "doar", "Doação")
}

func amountRequest(amount float64) *models.CreateSessionRequest {
    n := models.Number(amount)
    return &models.CreateSessionRequest{Amount: &n}
}

func TestCreateSessionConvertsToMinorUnits(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{ID: "cs_a1", URL: "https://checkout.stripe.com/pay/cs_a1"}}
    svc := newTestService(gw)

    resp, err := svc.CreateSession(context.Background(), amountRequest(10.5), "")
    require.NoError(t, err)

    assert.Equal(t, "https://checkout.stripe.com/pay/cs_a1", resp.URL)
    assert.Equal(t, 1, gw.createCalls)
    assert.Equal(t, int64(1050), gw.lastParams.UnitAmount)
    assert.Equal(t, "brl", gw.lastParams.Currency)
    assert.Equal(t, "Doação", gw.lastParams.ProductName)
    assert.Equal(t, map[string]string{"site": "doar"}, gw.lastParams.Metadata)
}

func TestCreateSessionRejectsInvalidAmounts(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{}}
    svc := newTestService(gw)

    var validationErr *models.ValidationError

    // Ausente
    _, err := svc.CreateSession(context.Background(), &models.CreateSessionRequest{}, "")
    require.ErrorAs(t, err, &validationErr)
    assert.Equal(t, "amount é obrigatório", validationErr.Message)

    // Zero, negativo e não numérico
    for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
        _, err = svc.CreateSession(context.Background(), amountRequest(amount), "")
        assert.ErrorAs(t, err, &validationErr)
    }

    // Nenhuma entrada inválida chega ao gateway
    assert.Zero(t, gw.createCalls)
}

func TestCreateSessionMethodSelection(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{}}
    svc := newTestService(gw)

    req := amountRequest(10)
    req.Method = "card"
    _, err := svc.CreateSession(context.Background(), req, "")
    require.NoError(t, err)
    assert.Equal(t, []string{"card"}, gw.lastParams.PaymentTypes)
    assert.Zero(t, gw.lastParams.PixExpiresAfter)

    req.Method = "pix"
    _, err = svc.CreateSession(context.Background(), req, "")
    require.NoError(t, err)
    assert.Equal(t, []string{"pix"}, gw.lastParams.PaymentTypes)
    assert.Equal(t, int64(1800), gw.lastParams.PixExpiresAfter)

    req.Method = "qualquer-coisa"
    _, err = svc.CreateSession(context.Background(), req, "")
    require.NoError(t, err)
    assert.Equal(t, []string{"card", "pix"}, gw.lastParams.PaymentTypes)
    assert.Equal(t, int64(1800), gw.lastParams.PixExpiresAfter)
}

func TestCreateSessionBuildsReturnURLs(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{}}
    svc := newTestService(gw)

    req := amountRequest(10)
    req.ReturnBase = "https://meusite.com.br/"
    _, err := svc.CreateSession(context.Background(), req, "")
    require.NoError(t, err)

    assert.Equal(t, "https://meusite.com.br/sucesso.html?session_id={CHECKOUT_SESSION_ID}", gw.lastParams.SuccessURL)
    assert.Equal(t, "https://meusite.com.br/cancelado.html", gw.lastParams.CancelURL)

    // returnBase inválido cai no fallback configurado
    req.ReturnBase = "not-a-url"
    _, err = svc.CreateSession(context.Background(), req, "")
    require.NoError(t, err)
    assert.Equal(t, "https://doar.example.org/cancelado.html", gw.lastParams.CancelURL)
}

func TestCreateSessionGatewayFailureIsNotRetried(t *testing.T) {
    gw := &fakeGateway{err: errors.New("stripe: boom")}
    svc := newTestService(gw)

    _, err := svc.CreateSession(context.Background(), amountRequest(10), "")
    require.Error(t, err)

    var validationErr *models.ValidationError
    assert.False(t, errors.As(err, &validationErr))
    assert.Equal(t, 1, gw.createCalls)
}

func TestSessionStatusRejectsMalformedIDs(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{}}
    svc := newTestService(gw)

    var validationErr *models.ValidationError
    for _, id := range []string{"", "abc", "cs_", "cs_abc!", "pi_abc123", "cs_test_abc"} {
        _, err := svc.SessionStatus(context.Background(), id)
        assert.ErrorAs(t, err, &validationErr, "id %q", id)
    }

    // Rejeição acontece antes de qualquer chamada de rede
    assert.Zero(t, gw.retrieveCalls)
}

func TestSessionStatusTranslatesSession(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{
        PaymentStatus: stripe.CheckoutSessionPaymentStatus("paid"),
        AmountTotal:   1050,
        Currency:      stripe.Currency("brl"),
        PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatus("succeeded")},
    }}
    svc := newTestService(gw)

    resp, err := svc.SessionStatus(context.Background(), "cs_a1B2c3")
    require.NoError(t, err)
    assert.Equal(t, 1, gw.retrieveCalls)

    assert.Equal(t, "paid", resp.PaymentStatus)
    assert.Equal(t, int64(1050), resp.AmountTotal)
    assert.Equal(t, "brl", resp.Currency)
    require.NotNil(t, resp.PaymentIntentStatus)
    assert.Equal(t, "succeeded", *resp.PaymentIntentStatus)
}

func TestSessionStatusWithoutPaymentIntent(t *testing.T) {
    gw := &fakeGateway{session: &stripe.CheckoutSession{
        PaymentStatus: stripe.CheckoutSessionPaymentStatus("unpaid"),
        Currency:      stripe.Currency("brl"),
    }}
    svc := newTestService(gw)

    resp, err := svc.SessionStatus(context.Background(), "cs_a1B2c3")
    require.NoError(t, err)
    assert.Nil(t, resp.PaymentIntentStatus)
}

func TestNilGatewayIsUnavailable(t *testing.T) {
    svc := newTestService(nil)

    _, err := svc.CreateSession(context.Background(), amountRequest(10), "")
    assert.ErrorIs(t, err, models.ErrGatewayUnavailable)

    _, err = svc.SessionStatus(context.Background(), "cs_a1B2c3")
    assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}
