package graphql

import (
	"context"
	"net/http"

	"github.com/graphauth/graphauth/internal/application/auth"
)

type ctxKey int

const (
	ctxIdentity ctxKey = iota
	ctxResponse
)

// WithIdentity attaches a verified token claim to the request context. The
// decision is made once, before resolver execution; resolvers only ever read
// presence or absence.
func WithIdentity(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, ctxIdentity, c)
}

// IdentityFrom reports the request's verified identity, if any.
func IdentityFrom(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ctxIdentity).(auth.Claims)
	return c, ok
}

// withResponseWriter makes the response writer reachable from resolvers so
// the login/register/logout mutations can set or clear the session cookie.
func withResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, ctxResponse, w)
}

func responseWriterFrom(ctx context.Context) (http.ResponseWriter, bool) {
	w, ok := ctx.Value(ctxResponse).(http.ResponseWriter)
	return w, ok
}
