package checkout

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

const fallbackBase = "https://doar.example.org"

func TestResolveReturnBasePrecedence(t *testing.T) {
    assert.Equal(t, "https://site.com", ResolveReturnBase("https://site.com", "https://origem.com", fallbackBase))
    assert.Equal(t, "https://origem.com", ResolveReturnBase("", "https://origem.com", fallbackBase))
    assert.Equal(t, fallbackBase, ResolveReturnBase("", "", fallbackBase))
}

func TestResolveReturnBaseStripsTrailingSlashes(t *testing.T) {
    // Idempotente: com ou sem barra final o resultado é o mesmo
    assert.Equal(t, "http://x", ResolveReturnBase("http://x/", "", fallbackBase))
    assert.Equal(t, "http://x", ResolveReturnBase("http://x", "", fallbackBase))
    assert.Equal(t, "http://x", ResolveReturnBase("http://x///", "", fallbackBase))

    assert.Equal(t, fallbackBase, ResolveReturnBase("", "", fallbackBase+"/"))
}

func TestResolveReturnBaseInvalidFallsBack(t *testing.T) {
    // Entrada inválida nunca produz uma base fora do fallback configurado
    assert.Equal(t, fallbackBase, ResolveReturnBase("not-a-url", "", fallbackBase))
    assert.Equal(t, fallbackBase, ResolveReturnBase("ftp://x", "", fallbackBase))
    assert.Equal(t, fallbackBase, ResolveReturnBase("", "javascript:alert(1)", fallbackBase))

    // O origin não é consultado quando o returnBase explícito é inválido
    assert.Equal(t, fallbackBase, ResolveReturnBase("not-a-url", "https://origem.com", fallbackBase))
}
