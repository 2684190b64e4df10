package api

import (
	"encoding/json"
	"net/http"

	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

// envelope is the body of every JSON response
type envelope struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Data     interface{}           `json:"data,omitempty"`
	Metadata *similarity.Metadata  `json:"metadata,omitempty"`
	Debug    *similarity.DebugInfo `json:"debug,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
