package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/pkg/cookiex"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	LoginService    *service.LoginService
	SessionService  *service.SessionService
	TokenService    *service.TokenService
	UserService     *service.UserService
	ResolverService *service.ResolverService
	Cookies         *cookiex.Manager
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerMobileAuth()
	r.registerWebAuth()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerMobileAuth() {
	login := &MobileLoginHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/auth/mobile/{provider}", login)

	refresh := &RefreshHandler{SessionService: r.SessionService, TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/mobile/refresh", refresh)

	logout := &MobileLogoutHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/auth/mobile/logout", logout)
}

func (r *Router) registerWebAuth() {
	login := &WebLoginHandler{LoginService: r.LoginService, Cookies: r.Cookies}
	r.Mux.Handle("POST /v1/auth/web/{provider}", login)

	logout := &WebLogoutHandler{Cookies: r.Cookies}
	r.Mux.Handle("POST /v1/auth/web/logout", logout)
}

func (r *Router) registerUsers() {
	h := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/me", httpx.Chain(h, AuthnMiddleware(r.ResolverService)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
