// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package googleauth implements the Google OAuth2 identity-provider client.

It exchanges an authorization code for an identity assertion (email, name,
picture) which the auth service uses to sign in or auto-provision a
federated account.

Architecture:

  - Thin wrapper over golang.org/x/oauth2 with the Google endpoint.
  - The domain layer depends only on the auth.IdentityProvider interface.
  - Every provider failure collapses into a single UPSTREAM_FAILURE kind.
*/
package googleauth

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/taibuivan/ripple/internal/platform/apperr"
)

// userInfoURL is Google's OpenID userinfo endpoint.
const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the identity assertion returned by a successful code exchange.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Client performs the OAuth2 authorization-code flow against Google.
type Client struct {
	config *oauth2.Config
}

// New constructs a Client from application credentials.
func New(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL returns the consent-screen URL the frontend redirects users to.
// Pure construction; no network traffic.
func (client *Client) AuthURL(state string) string {
	return client.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for the user's identity profile.
func (client *Client) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := client.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Upstream("Google token exchange failed", err)
	}

	httpClient := client.config.Client(ctx, token)
	response, err := httpClient.Get(userInfoURL)
	if err != nil {
		return nil, apperr.Upstream("Google userinfo request failed", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("Google userinfo request rejected", nil)
	}

	profile := &Profile{}
	if err := json.NewDecoder(response.Body).Decode(profile); err != nil {
		return nil, apperr.Upstream("Google userinfo response malformed", err)
	}

	return profile, nil
}
