package models

// ErrorResponse é o envelope único de erro da API. Nenhum detalhe
// interno do gateway é exposto aqui.
type ErrorResponse struct {
    Error string `json:"error"`
}
