// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"

	"gopkg.in/yaml.v3"
)

// FormatParam is the query parameter that selects the response encoding.
const FormatParam = "format"

// Content types written by this package.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// ErrorResponse is the body written by WriteError.
type ErrorResponse struct {
	Error   string `json:"error" yaml:"error"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteYAML writes a YAML response with the given status code. A value that
// cannot be encoded produces a 500 instead.
func WriteYAML(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", ContentTypeYAML)
		w.WriteHeader(status)
		return
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "encode_failed", Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", ContentTypeYAML)
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// WantsYAML reports whether the request asked for ?format=yaml.
func WantsYAML(r *http.Request) bool {
	return r.URL.Query().Get(FormatParam) == "yaml"
}

// Write writes data as JSON, or as YAML when the request asks for it.
func Write(w http.ResponseWriter, r *http.Request, status int, data any) {
	if WantsYAML(r) {
		WriteYAML(w, status, data)
		return
	}
	WriteJSON(w, status, data)
}

// WriteError writes an ErrorResponse in the encoding the request asks for.
func WriteError(w http.ResponseWriter, r *http.Request, status int, errCode, message string) {
	Write(w, r, status, ErrorResponse{Error: errCode, Message: message})
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, r *http.Request, data any) {
	Write(w, r, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, errCode, message string) {
	WriteError(w, r, http.StatusBadRequest, errCode, message)
}
