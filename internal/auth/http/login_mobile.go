package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// MobileLoginHandler serves POST /v1/auth/mobile/{provider}.
// It verifies the provider identity token, creates the account on first
// login, and returns an access/refresh pair bound to the device.
type MobileLoginHandler struct {
	LoginService *service.LoginService
}

func (h *MobileLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	var body MobileLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	identityToken := strings.TrimSpace(body.IdentityToken)
	deviceID := strings.TrimSpace(body.DeviceID)
	if identityToken == "" || deviceID == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	user, pair, err := h.LoginService.LoginMobile(ctx, provider, identityToken, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity):
			httpx.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("mobile login failed", "err", err)
			httpx.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		User: user,
		Token: TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    pair.TokenType,
			ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		},
	})
}
