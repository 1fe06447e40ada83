package http

import (
	"errors"
	"net/http"

	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// MeHandler serves GET /v1/me for any authenticated request, bearer or
// cookie.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		// A credential naming a deleted account is just an invalid
		// credential.
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrInvalidToken.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("profile lookup failed", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
