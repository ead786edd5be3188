package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"

    "github.com/google/uuid"
    "github.com/gorilla/mux"

    "doar-payment-api/models"
    "doar-payment-api/services/checkout"
    "doar-payment-api/utils"
)

type CheckoutHandler struct {
    service *checkout.Service
}

func NewCheckoutHandler(s *checkout.Service) *CheckoutHandler {
    return &CheckoutHandler{service: s}
}

// writeServiceError converte erros do serviço na taxonomia da API:
// entrada inválida vira 400, gateway não configurado vira 503 e o resto
// vira 500 genérico com a causa registrada apenas no log.
func writeServiceError(w http.ResponseWriter, requestID, genericMessage string, err error) {
    var validationErr *models.ValidationError
    switch {
    case errors.As(err, &validationErr):
        utils.SendErrorResponse(w, http.StatusBadRequest, validationErr.Message)
    case errors.Is(err, models.ErrGatewayUnavailable):
        utils.SendErrorResponse(w, http.StatusServiceUnavailable, "pagamento online indisponível")
    default:
        log.Printf("[RequestID: %s] %s: %v", requestID, genericMessage, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, genericMessage)
    }
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

    var req models.CreateSessionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "corpo da requisição inválido")
        return
    }

    resp, err := h.service.CreateSession(r.Context(), &req, r.Header.Get("Origin"))
    if err != nil {
        writeServiceError(w, requestID, "erro ao criar sessão de pagamento", err)
        return
    }

    utils.SendJSON(w, http.StatusOK, resp)
}

func (h *CheckoutHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()
    id := mux.Vars(r)["id"]

    resp, err := h.service.SessionStatus(r.Context(), id)
    if err != nil {
        writeServiceError(w, requestID, "erro ao consultar sessão de pagamento", err)
        return
    }

    utils.SendJSON(w, http.StatusOK, resp)
}
