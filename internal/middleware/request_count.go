package middleware

import "net/http"

// RequestCounter is incremented once per inbound request.
type RequestCounter interface {
	IncrementRequestCount() int64
}

// CountRequests bumps counter once the request has been served, so a stats
// response reports the requests that completed before it.
func CountRequests(counter RequestCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer counter.IncrementRequestCount()
			next.ServeHTTP(w, r)
		})
	}
}
