package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, op string, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", zap.String("op", op), zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, op string, status int, message string) {
	writeJSON(w, log, op, status, errorResponse{Status: "error", Message: message})
}

// Routes registers the journal service contract on mux.
func Routes(mux *http.ServeMux, logs *LogHandler, rapports *RapportHandler) {
	mux.HandleFunc("/add-log", logs.HandleAddLog)
	mux.HandleFunc("/rapports", rapports.HandleListRapports)
	mux.HandleFunc("/openai", rapports.HandleGenerateRapport)
}
