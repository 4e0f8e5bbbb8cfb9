package httptransport

import (
	"encoding/json"
	"net/http"

	"kantor/pkg/domain"
)

// Vendor media types, kept from the service's original wire contract.
const (
	mediaTypeNewAccount     = "application/vnd.new-account.v1+json"
	mediaTypeExchanged      = "application/vnd.exchanged.v1+json"
	mediaTypeViolation      = "application/vnd.constraint-violation.v1+json"
	mediaTypeAccountDetails = "application/vnd.account-details.v1+json"
)

func writeJSON(w http.ResponseWriter, status int, contentType string, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps use-case failures onto the wire: a constraint violation is
// a 422 with the violation body, every infrastructure failure is an opaque
// 500.
func writeError(w http.ResponseWriter, err error) {
	if ir, ok := domain.AsInvalidRequest(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, mediaTypeViolation, ir.Violation)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
}

func writeBadRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
}
