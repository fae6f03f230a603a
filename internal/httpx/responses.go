package httpx

import (
	"encoding/json"
	"net/http"

	"bookshelf/internal/apperr"
)

// MessageBody is the wire shape for all error responses.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONMessage writes a {"message": ...} body with the given status code.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageBody{Message: message})
}

// JSONError renders err using its mapped HTTP status.
func JSONError(w http.ResponseWriter, err error) {
	JSONMessage(w, apperr.HTTPStatus(err), err.Error())
}
