package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/mobile/refresh.
// It rotates the presented refresh token for a successor and mints a fresh
// access token. Every rejection, whatever the internal reason, is the same
// invalid_grant response.
type RefreshHandler struct {
	SessionService *service.SessionService
	TokenService   *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	rotated, err := h.SessionService.Rotate(ctx, body.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			httpx.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("refresh rotation failed", "err", err)
			httpx.ErrServerError.WriteError(w)
		}
		return
	}

	access, err := h.TokenService.Issue(rotated.UserID)
	if err != nil {
		log.Error("access token issue failed", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: rotated.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.TokenService.AccessTTL.Seconds()),
	})
}
