package models

import (
    "math"
    "strconv"
    "strings"
)

// Number aceita valores numéricos enviados como número ou string JSON,
// já que o formulário público envia os campos como string. Valores que
// não podem ser convertidos viram NaN e são rejeitados na validação.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
    raw := strings.TrimSpace(string(data))
    raw = strings.Trim(raw, `"`)

    value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
    if err != nil {
        value = math.NaN()
    }

    *n = Number(value)
    return nil
}

type CreateSessionRequest struct {
    Amount     *Number `json:"amount"`
    Method     string  `json:"method"`
    ReturnBase string  `json:"returnBase"`
}

type CreateSessionResponse struct {
    URL string `json:"url"`
}

type SessionStatusResponse struct {
    PaymentStatus       string  `json:"payment_status"`
    AmountTotal         int64   `json:"amount_total"`
    Currency            string  `json:"currency"`
    PaymentIntentStatus *string `json:"payment_intent_status,omitempty"`
}

type RenderCodeRequest struct {
    BRCode string  `json:"brcode"`
    Size   *Number `json:"size"`
}

type RenderCodeResponse struct {
    DataURL string `json:"dataUrl"`
}
