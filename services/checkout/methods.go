package checkout

// PixExpirationSeconds é a janela após a qual o gateway considera o
// código PIX expirado (30 minutos).
const PixExpirationSeconds = 1800

// Method é o método de pagamento solicitado pelo doador.
type Method int

const (
    MethodCard Method = iota
    MethodPix
    MethodBoth
)

// ParseMethod converte o valor bruto do request. Ausente vira cartão;
// qualquer valor fora de {card, pix} habilita os dois métodos em vez de
// rejeitar o request.
func ParseMethod(raw string) Method {
    switch raw {
    case "", "card":
        return MethodCard
    case "pix":
        return MethodPix
    default:
        return MethodBoth
    }
}

// PaymentTypes retorna a lista ordenada de tipos aceitos pelo gateway e
// a expiração de PIX a anexar (zero quando PIX não participa).
func (m Method) PaymentTypes() ([]string, int64) {
    switch m {
    case MethodCard:
        return []string{"card"}, 0
    case MethodPix:
        return []string{"pix"}, PixExpirationSeconds
    default:
        return []string{"card", "pix"}, PixExpirationSeconds
    }
}
