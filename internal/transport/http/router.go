// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to the use cases and translate their results; business rules
// never live here.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kantor/internal/platform/middleware"
)

// NewRouter wires all endpoints behind the shared middleware stack.
func NewRouter(logger *slog.Logger, accounts *AccountHandler, exchange *ExchangeHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	r.Get("/", handleRoot)
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	accounts.Register(r)
	exchange.Register(r)
	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello"))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, into any) error {
	return json.NewDecoder(r.Body).Decode(into)
}
