package rest

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondSuccess writes {success:true, statusCode, message} merged with fields.
func respondSuccess(w http.ResponseWriter, status int, message string, fields map[string]any) {
	body := map[string]any{
		"success":    true,
		"statusCode": status,
		"message":    message,
	}
	for k, v := range fields {
		body[k] = v
	}
	respondJSON(w, status, body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Success: false, StatusCode: status, Message: message})
}
