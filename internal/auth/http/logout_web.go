package http

import (
	"net/http"

	"github.com/meusdesafios/auth/pkg/cookiex"
)

// WebLogoutHandler serves POST /v1/auth/web/logout.
// Logout is purely client-side state: the sealed cookie is overwritten with
// an expired empty value. There is no server-side session to revoke.
type WebLogoutHandler struct {
	Cookies *cookiex.Manager
}

func (h *WebLogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Destroy(w)
	w.WriteHeader(http.StatusNoContent)
}
