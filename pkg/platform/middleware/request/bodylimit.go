package request

import "net/http"

// BodyLimit wraps request bodies in http.MaxBytesReader. Reads past maxBytes
// fail with *http.MaxBytesError, which the tenant decoders report as 413.
// A non-positive maxBytes leaves bodies unbounded.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
