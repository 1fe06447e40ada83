package http

import (
	"net/http"

	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/pkg/httpx"
)

// AuthnMiddleware authenticates the request through the resolver and attaches
// the identity to the context. Requests with no usable credential get a
// uniform 401.
func AuthnMiddleware(resolver *service.ResolverService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, err := resolver.Resolve(r)
			if err != nil {
				httpx.ErrInvalidToken.WriteError(w)
				return
			}

			ctx := httpx.WithIdentity(r.Context(), authCtx.UserID, string(authCtx.AuthType))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
