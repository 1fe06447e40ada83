package domain

// AuthType records which mechanism authenticated a request.
type AuthType string

const (
	AuthTypeToken  AuthType = "token"
	AuthTypeCookie AuthType = "cookie"
)

// AuthContext is the resolved, request-scoped identity every protected
// endpoint consumes. It is derived per request and never stored.
type AuthContext struct {
	UserID   string
	AuthType AuthType
}
