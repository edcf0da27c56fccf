// Package httpserver builds the process HTTP server with conservative timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server for handler on addr. WriteTimeout covers slow multipart
// uploads; handlers carry their own request timeout.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
