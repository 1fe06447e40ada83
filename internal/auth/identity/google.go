package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/pkg/slogx"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens via the tokeninfo endpoint.
// Google does the signature and expiry checks; we only confirm the token was
// minted for our client id.
type GoogleVerifier struct {
	ClientID string
	Client   *http.Client

	// Endpoint overrides the tokeninfo URL, mainly for tests.
	Endpoint string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID: clientID,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Endpoint: googleTokenInfoURL,
	}
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, identityToken string) (domain.ProviderProfile, error) {
	u := fmt.Sprintf("%s?id_token=%s", v.Endpoint, url.QueryEscape(identityToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.ProviderProfile{}, err
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("google tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Google answers 4xx for anything it won't vouch for.
		return domain.ProviderProfile{}, ErrInvalidIdentityToken
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("google tokeninfo: %w", err)
	}

	if info.Aud != v.ClientID || info.Sub == "" {
		slogx.FromContext(ctx).Warn("google id token rejected", "aud", info.Aud)
		return domain.ProviderProfile{}, ErrInvalidIdentityToken
	}

	return domain.ProviderProfile{
		Provider: domain.ProviderGoogle,
		Subject:  info.Sub,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
