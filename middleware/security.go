package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/royal450/DaillyEarners2/utils"
)

// generateRequestID creates a short random request id
func generateRequestID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// SecurityHeadersMiddleware sets security headers. Behavior is env-driven;
// CORS itself is handled by the gorilla/handlers wrapper in routes.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	env := strings.ToLower(getenv("ENV", "development"))
	hsts := getenv("SEC_HSTS", "false")
	csp := getenv("SEC_CSP", "default-src 'none'; frame-ancestors 'none'; base-uri 'self';")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		if env != "development" {
			w.Header().Set("Content-Security-Policy", csp)
		}
		if hsts == "true" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		next.ServeHTTP(w, r)
	})
}

// responseRecorder wraps ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogMiddleware logs every request and response to stdout
func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("[http] %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// RequestIDMiddleware injects a request id into context and response headers
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = generateRequestID()
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := context.WithValue(r.Context(), utils.RequestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TimeoutMiddleware cancels the request context after a configured timeout
func TimeoutMiddleware(next http.Handler) http.Handler {
	timeoutSec := atoi(getenv("REQ_TIMEOUT_SEC", "15"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeoutSec)*time.Second)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoveryMiddleware recovers from panics, logs with request context and
// returns a generic 500.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := r.Context().Value(utils.RequestIDKey).(string)
				log.Printf("PANIC recovered: request_id=%s method=%s path=%s panic=%v\n%s", rid, r.Method, r.URL.Path, rec, string(debug.Stack()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Internal server error", "request_id": rid})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// In-memory metrics and suspicious activity tracking
var (
	metricsMu  sync.Mutex
	routeTimes = make(map[string][]time.Duration)

	suspiciousMu sync.Mutex
	suspicious   = make(map[string]int)
)

// MetricsMiddleware measures response time per route and flags slow responses
func MetricsMiddleware(next http.Handler) http.Handler {
	slowThresholdMs := atoi(getenv("METRIC_SLOW_MS", "800"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)

		metricsMu.Lock()
		key := r.Method + " " + r.URL.Path
		arr := routeTimes[key]
		if len(arr) >= 100 {
			arr = arr[1:]
		}
		routeTimes[key] = append(arr, elapsed)
		metricsMu.Unlock()

		if elapsed > time.Duration(slowThresholdMs)*time.Millisecond {
			ip := r.RemoteAddr
			suspiciousMu.Lock()
			suspicious[ip] = suspicious[ip] + 1
			suspiciousMu.Unlock()
		}
	})
}

// SuspiciousActivityMiddleware throttles IPs that keep triggering slow responses
func SuspiciousActivityMiddleware(next http.Handler) http.Handler {
	threshold := atoi(getenv("SUSPICIOUS_THRESHOLD", "10"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		suspiciousMu.Lock()
		count := suspicious[ip]
		suspiciousMu.Unlock()
		if count >= threshold {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	if v <= 0 {
		return 0
	}
	return v
}
