// Package admin guards the tenant routes with a shared operator token.
package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "tenantadmin/pkg/domain-errors"
	"tenantadmin/pkg/platform/httputil"
	request "tenantadmin/pkg/platform/middleware/request"
)

const (
	HeaderAdminToken = "X-Admin-Token"
	// HeaderActorID names the operator; tenant audit events fall back to it
	// when no userId query parameter is given.
	HeaderActorID = "X-Admin-Actor-ID"
)

type contextKeyAdminActorID struct{}

// ContextKeyAdminActorID is exported so tests can seed an actor.
var ContextKeyAdminActorID = contextKeyAdminActorID{}

// GetAdminActorID returns the actor captured by RequireAdminToken, or "".
func GetAdminActorID(ctx context.Context) string {
	actorID, _ := ctx.Value(ContextKeyAdminActorID).(string)
	return actorID
}

// RequireAdminToken answers 401 unless the request carries expectedToken.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !tokenMatches(r.Header.Get(HeaderAdminToken), expectedToken) {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			if actorID := r.Header.Get(HeaderActorID); actorID != "" {
				r = r.WithContext(context.WithValue(ctx, ContextKeyAdminActorID, actorID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenMatches(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
