package checkout

import (
    "regexp"
    "strings"
)

var absoluteURLPattern = regexp.MustCompile(`^https?://`)

// ResolveReturnBase escolhe a base das URLs de retorno: returnBase
// explícito, depois o Origin do request, depois o fallback configurado.
// Barras finais são removidas. Se o valor escolhido não for uma URL
// http(s) absoluta, cai silenciosamente no fallback em vez de falhar o
// checkout — nunca retorna erro.
func ResolveReturnBase(explicit, origin, fallback string) string {
    base := explicit
    if base == "" {
        base = origin
    }
    if base == "" {
        base = fallback
    }

    base = strings.TrimRight(base, "/")
    if !absoluteURLPattern.MatchString(base) {
        base = strings.TrimRight(fallback, "/")
    }
    return base
}
