package pix

import (
    "encoding/base64"
    "fmt"

    "github.com/skip2/go-qrcode"

    "doar-payment-api/models"
)

const (
    // DefaultSize é a largura em pixels usada quando o cliente não
    // informa um tamanho válido.
    DefaultSize = 220

    // minCodeLength é um piso de sanidade contra entradas obviamente
    // malformadas; o conteúdo do BR Code é opaco e não é validado.
    minCodeLength = 20
)

// Service renderiza um código de pagamento PIX ("copia e cola") como
// imagem escaneável, inteiramente local, sem depender do gateway.
type Service struct{}

func NewService() *Service {
    return &Service{}
}

// Render valida o código e devolve um data URL PNG com nível de
// correção de erro M. Cada chamada renderiza de novo, nada é cacheado.
func (s *Service) Render(brcode string, size int) (string, error) {
    if brcode == "" {
        return "", models.NewValidationError("brcode", "brcode é obrigatório")
    }
    if len(brcode) < minCodeLength {
        return "", models.NewValidationError("brcode", "brcode inválido")
    }

    if size <= 0 {
        size = DefaultSize
    }

    png, err := qrcode.Encode(brcode, qrcode.Medium, size)
    if err != nil {
        return "", fmt.Errorf("encode QR code: %w", err)
    }

    return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
