/*
Package authsdk provides a Go client for the meusdesafios authentication
service.

The package is organized around two types:

  - SDKClient: unauthenticated operations (login, health) and session creation
  - Session: authenticated operations with automatic token refresh

Create an SDKClient and log in to obtain a Session:

	client := authsdk.NewSDKClient("https://auth.meusdesafios.com")

	session, err := client.LoginMobile(ctx, "google", idToken, deviceID)
	if err != nil {
		return err
	}

	me, err := session.Me(ctx)

Sessions transparently rotate the refresh token when the access token nears
expiry; callers never refresh manually. Sessions are safe for concurrent use.

Because refresh tokens are single-use, persist the CURRENT token pair
(Session.AccessToken / Session.RefreshToken) after calls that may have
refreshed, and resume later with NewSessionFromTokens.
*/
package authsdk
