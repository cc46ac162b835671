package api

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jbassil/agence/internal/pb"
)

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// RegisterRoutes mounts the application's endpoints on mux. Handlers talk to
// the backend through client, which main obtains from pb.Get.
func RegisterRoutes(mux *http.ServeMux, client *pb.Client) {
	h := NewHandler(client)

	// Health Check
	mux.HandleFunc("/health/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "pong"}`))
	})

	mux.Handle("/health/backend", loggingMiddleware(corsMiddleware(http.HandlerFunc(h.BackendHealth))))
	mux.Handle("/users/{id}", loggingMiddleware(corsMiddleware(http.HandlerFunc(h.User))))
}
