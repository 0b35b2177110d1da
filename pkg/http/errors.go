package http

import (
	"encoding/json"
	"net/http"
)

// The admin panel reads three body shapes: {"error": "..."} from content and
// auth endpoints, {"message": "..."} from credential and document endpoints,
// and {"error": code, "message": text} from the operational endpoints.

// ErrorBody is the `{ "error": "..." }` body.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the `{ "message": "..." }` body.
type MessageBody struct {
	Message string `json:"message"`
}

// CodedError carries a machine-readable code next to the text.
type CodedError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessageError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorBody{Error: message})
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageBody{Message: message})
}

// WriteError writes a CodedError.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, CodedError{Error: code, Message: message})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}
