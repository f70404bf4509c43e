package middleware

import (
	"net/http"
	"os"
	"strconv"
)

// MaxBodyMiddleware caps the request body size. MAX_BODY_BYTES overrides the
// 2 MiB default, which leaves room for proof screenshot uploads.
func MaxBodyMiddleware(next http.Handler) http.Handler {
	max := int64(2 << 20)
	if s := os.Getenv("MAX_BODY_BYTES"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			max = v
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, max)
		next.ServeHTTP(w, r)
	})
}
