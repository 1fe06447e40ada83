package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/pkg/cookiex"
	"github.com/meusdesafios/auth/pkg/httpx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// WebLoginHandler serves POST /v1/auth/web/{provider}.
// The web client's whole session lives in the sealed cookie; no refresh
// session is created.
type WebLoginHandler struct {
	LoginService *service.LoginService
	Cookies      *cookiex.Manager
}

func (h *WebLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	var body WebLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(body.IdentityToken) == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.LoginService.LoginWeb(ctx, provider, strings.TrimSpace(body.IdentityToken))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity):
			httpx.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("web login failed", "err", err)
			httpx.ErrServerError.WriteError(w)
		}
		return
	}

	session := cookiex.Session{
		UserID:      user.ID,
		Handle:      user.Handle,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		IsLoggedIn:  true,
		Provider:    string(user.Provider),
	}
	if err := h.Cookies.Save(w, session); err != nil {
		log.Error("failed to seal session cookie", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user)
}
