package http

import (
	"encoding/json"
	"net/http"

	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// MobileLogoutHandler serves POST /v1/auth/mobile/logout.
// Revocation follows RFC 7009 semantics: the endpoint succeeds whether or not
// the presented token still named a live session.
type MobileLogoutHandler struct {
	SessionService *service.SessionService
}

func (h *MobileLogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.SessionService.Revoke(ctx, body.RefreshToken); err != nil {
		slogx.FromContext(ctx).Error("logout revocation failed", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
