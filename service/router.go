package service

import (
	"net/http"
)

// NewRouter wires the API endpoints and wraps them with CORS handling.
func NewRouter(h *Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/check", h.CheckName)
	mux.HandleFunc("GET /api/claim/nonce", h.IssueNonce)
	mux.HandleFunc("POST /api/claim", h.Claim)
	mux.HandleFunc("GET /api/registrations", h.Registrations)
	mux.HandleFunc("GET /api/health", h.Health)
	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+receiptHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
