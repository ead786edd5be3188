package models

import "errors"

// ErrGatewayUnavailable indica que o gateway de pagamento não foi
// configurado. As operações online respondem 503; o fluxo offline de
// PIX continua funcionando normalmente.
var ErrGatewayUnavailable = errors.New("gateway de pagamento não configurado")

// ValidationError identifica entrada malformada do cliente. A mensagem
// sempre nomeia o campo ofensor e vira resposta 400.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return e.Message
}

func NewValidationError(field, message string) *ValidationError {
    return &ValidationError{Field: field, Message: message}
}
