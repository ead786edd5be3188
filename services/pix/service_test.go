package pix

import (
    "bytes"
    "encoding/base64"
    "image/png"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "doar-payment-api/models"
)

const sampleBRCode = "00020126580014BR.GOV.BCB.PIX0136a1b2c3d4-0000-4000-8000-000000000000"

func decodeDataURL(t *testing.T, dataURL string) []byte {
    t.Helper()
    payload, ok := strings.CutPrefix(dataURL, "data:image/png;base64,")
    require.True(t, ok, "data URL sem o prefixo esperado: %.40s", dataURL)

    raw, err := base64.StdEncoding.DecodeString(payload)
    require.NoError(t, err)
    return raw
}

func TestRenderProducesScannablePNG(t *testing.T) {
    svc := NewService()

    dataURL, err := svc.Render(sampleBRCode, 300)
    require.NoError(t, err)

    img, err := png.Decode(bytes.NewReader(decodeDataURL(t, dataURL)))
    require.NoError(t, err)
    assert.Equal(t, 300, img.Bounds().Dx())
    assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRenderDefaultsSize(t *testing.T) {
    svc := NewService()

    dataURL, err := svc.Render(sampleBRCode, 0)
    require.NoError(t, err)

    img, err := png.Decode(bytes.NewReader(decodeDataURL(t, dataURL)))
    require.NoError(t, err)
    assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestRenderLengthFloor(t *testing.T) {
    svc := NewService()
    var validationErr *models.ValidationError

    // 19 caracteres é rejeitado
    _, err := svc.Render(strings.Repeat("x", 19), 220)
    require.ErrorAs(t, err, &validationErr)

    // 20 caracteres de conteúdo arbitrário é aceito
    dataURL, err := svc.Render(strings.Repeat("x", 20), 220)
    require.NoError(t, err)
    assert.NotEmpty(t, decodeDataURL(t, dataURL))
}

func TestRenderMissingCode(t *testing.T) {
    svc := NewService()

    _, err := svc.Render("", 220)
    var validationErr *models.ValidationError
    require.ErrorAs(t, err, &validationErr)
    assert.Equal(t, "brcode é obrigatório", validationErr.Message)
}
