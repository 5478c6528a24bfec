package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg writes the {"msg": "..."} shape spec.md §4.2/§7 uses for error
// responses, grounded on original_source/bran/src/endpoints/contexter.rs's
// `json!({"msg": ...})`.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}
