package checkout

import (
    "context"
    "fmt"
    "log"
    "math"
    "regexp"

    "github.com/stripe/stripe-go/v80"

    "doar-payment-api/models"
    "doar-payment-api/utils"
)

var sessionIDPattern = regexp.MustCompile(`^cs_[A-Za-z0-9]+$`)

// Service orquestra a criação e consulta de sessões de checkout no
// gateway. O gateway é injetado; nil significa que a credencial não foi
// configurada e as operações online respondem indisponível.
type Service struct {
    gateway            Gateway
    fallbackReturnBase string
    siteName           string
    productName        string
}

func NewService(gw Gateway, fallbackReturnBase, siteName, productName string) *Service {
    return &Service{
        gateway:            gw,
        fallbackReturnBase: fallbackReturnBase,
        siteName:           siteName,
        productName:        productName,
    }
}

type normalizedRequest struct {
    unitAmount int64
    method     Method
}

// normalize valida o corpo bruto e converte o valor em reais para
// centavos antes de qualquer chamada ao gateway.
func normalize(req *models.CreateSessionRequest) (normalizedRequest, error) {
    if req.Amount == nil {
        return normalizedRequest{}, models.NewValidationError("amount", "amount é obrigatório")
    }

    amount := float64(*req.Amount)
    if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
        return normalizedRequest{}, models.NewValidationError("amount", "amount deve ser um número positivo")
    }

    return normalizedRequest{
        unitAmount: utils.ToMinorUnits(amount),
        method:     ParseMethod(req.Method),
    }, nil
}

// CreateSession cria exatamente uma sessão no gateway. Falhas não são
// retentadas para não duplicar sessões de checkout.
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest, origin string) (*models.CreateSessionResponse, error) {
    if s.gateway == nil {
        return nil, models.ErrGatewayUnavailable
    }

    normalized, err := normalize(req)
    if err != nil {
        return nil, err
    }

    base := ResolveReturnBase(req.ReturnBase, origin, s.fallbackReturnBase)
    paymentTypes, pixExpiry := normalized.method.PaymentTypes()

    session, err := s.gateway.CreateSession(ctx, CreateSessionParams{
        Currency:        "brl",
        ProductName:     s.productName,
        UnitAmount:      normalized.unitAmount,
        PaymentTypes:    paymentTypes,
        PixExpiresAfter: pixExpiry,
        SuccessURL:      base + "/sucesso.html?session_id={CHECKOUT_SESSION_ID}",
        CancelURL:       base + "/cancelado.html",
        Metadata:        map[string]string{"site": s.siteName},
    })
    if err != nil {
        return nil, fmt.Errorf("gateway create session: %w", err)
    }

    log.Printf("Checkout session created: %s", session.ID)
    return &models.CreateSessionResponse{URL: session.URL}, nil
}

// SessionStatus consulta a sessão no gateway e traduz o objeto cru para
// o payload canônico. IDs malformados são rejeitados antes de qualquer
// chamada de rede.
func (s *Service) SessionStatus(ctx context.Context, id string) (*models.SessionStatusResponse, error) {
    if s.gateway == nil {
        return nil, models.ErrGatewayUnavailable
    }

    if !sessionIDPattern.MatchString(id) {
        return nil, models.NewValidationError("session_id", "session_id inválido")
    }

    session, err := s.gateway.RetrieveSession(ctx, id)
    if err != nil {
        return nil, fmt.Errorf("gateway retrieve session: %w", err)
    }

    return translateSession(session), nil
}

// translateSession só traduz; nenhuma decisão de negócio (como "está
// pago") é tomada aqui.
func translateSession(session *stripe.CheckoutSession) *models.SessionStatusResponse {
    resp := &models.SessionStatusResponse{
        PaymentStatus: string(session.PaymentStatus),
        AmountTotal:   session.AmountTotal,
        Currency:      string(session.Currency),
    }
    if session.PaymentIntent != nil {
        status := string(session.PaymentIntent.Status)
        resp.PaymentIntentStatus = &status
    }
    return resp
}
