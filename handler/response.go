package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nekesuresh/RFP/types"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, types.DataResponse{
		Status:  false,
		Message: message,
	})
}
