package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder is a custom ResponseWriter to capture status and body
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       string
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	// Handlers that already answer in JSON pass through untouched. Plain-text
	// error bodies (http.Error and friends) are captured and normalized.
	if r.statusCode >= 400 && !strings.HasPrefix(r.Header().Get("Content-Type"), "application/json") {
		r.body = strings.TrimSpace(string(b))
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler wraps the router so that every error response is JSON: panics
// become a generic 500 and plain-text error bodies are re-encoded as
// {"error": ...}.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: 200}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v", err)
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal Server Error"})
			} else if rec.statusCode >= 400 && rec.body != "" {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(ErrorResponse{Error: rec.body})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
