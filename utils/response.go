package utils

import (
    "encoding/json"
    "net/http"

    "doar-payment-api/models"
)

func SendJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

func SendErrorResponse(w http.ResponseWriter, status int, message string) {
    SendJSON(w, status, models.ErrorResponse{Error: message})
}
