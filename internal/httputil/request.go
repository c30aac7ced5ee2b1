package httputil

import (
	"encoding/json"
	"net/http"

	"appforge/internal/domain"
)

// ParseJSON decodes the request body into dest. The body is capped at 10MB.
// Decode failures surface as illegal-param business errors so the boundary
// answers with a localized message. Required-field checks belong to the
// service-layer validators, not here.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.Ef(domain.CodeIllegalParam, "field", err.Error())
	}
	return nil
}
