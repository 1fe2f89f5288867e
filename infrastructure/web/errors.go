package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the fallback error body used when no richer application
// error is available.
type ErrorResponse struct {
	Message string `json:"message"`
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

func (e ErrorResponse) Error() string {
	return e.Message
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e ErrorResponse) HTTPStatus() int {
	return http.StatusInternalServerError
}
