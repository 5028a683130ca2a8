package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape every endpoint answers with:
// {"success": bool, "message": "...", ...extra fields}.
type Envelope map[string]interface{}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, r *http.Request, extra Envelope) {
	body := Envelope{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, r, http.StatusOK, body)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, Envelope{"success": false, "message": message})
}
