package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID is the resolved user identity for the request.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyAuthType records which mechanism authenticated the request
	// ("token" or "cookie").
	CtxKeyAuthType ctxKey = "auth_type"
)

// WithIdentity attaches the resolved identity to the context.
func WithIdentity(ctx context.Context, userID, authType string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	return context.WithValue(ctx, CtxKeyAuthType, authType)
}

// UserIDFromCtx returns the authenticated user ID, or "" if the request was
// not resolved.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// AuthTypeFromCtx returns the mechanism that authenticated the request.
func AuthTypeFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAuthType).(string); ok {
		return v
	}
	return ""
}
