package api

import (
	"encoding/json"
	"net/http"

	"cicd-demo/statusboard/internal/logging"
)

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// headers are already sent; nothing left to tell the client
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
