package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"

    "github.com/google/uuid"

    "doar-payment-api/models"
    "doar-payment-api/services/pix"
    "doar-payment-api/utils"
)

type PixHandler struct {
    service *pix.Service
}

func NewPixHandler(s *pix.Service) *PixHandler {
    return &PixHandler{service: s}
}

func (h *PixHandler) RenderCode(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

    var req models.RenderCodeRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "corpo da requisição inválido")
        return
    }

    // Tamanhos ausentes ou não numéricos caem no padrão do serviço.
    size := 0
    if req.Size != nil {
        if v := float64(*req.Size); v > 0 && v <= 4096 {
            size = int(v)
        }
    }

    dataURL, err := h.service.Render(req.BRCode, size)
    if err != nil {
        var validationErr *models.ValidationError
        if errors.As(err, &validationErr) {
            utils.SendErrorResponse(w, http.StatusBadRequest, validationErr.Message)
            return
        }
        log.Printf("[RequestID: %s] Failed to render PIX code: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "falha ao gerar QR Code")
        return
    }

    utils.SendJSON(w, http.StatusOK, models.RenderCodeResponse{DataURL: dataURL})
}
