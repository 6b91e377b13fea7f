package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleIdentity is the subset of the Google userinfo payload the
// storefront cares about.
type GoogleIdentity struct {
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleService exchanges OAuth authorization codes for a verified
// Google identity, backing federated sign-in.
type GoogleService struct {
	config *oauth2.Config
}

// NewGoogleService creates a new Google sign-in service. Returns nil
// when the client id is empty so callers can treat federated sign-in
// as disabled.
func NewGoogleService(clientID, clientSecret, redirectURL string) *GoogleService {
	if clientID == "" {
		return nil
	}
	return &GoogleService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{goauth2.UserinfoEmailScope, goauth2.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the consent page URL for the given state
func (s *GoogleService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode exchanges an authorization code for the user's identity
func (s *GoogleService) ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := s.config.Client(ctx, token)
	service, err := goauth2.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	userinfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	if userinfo.Email == "" {
		return nil, errors.New("google identity has no email")
	}

	identity := &GoogleIdentity{
		Email: userinfo.Email,
		Name:  userinfo.Name,
	}
	if userinfo.VerifiedEmail != nil {
		identity.EmailVerified = *userinfo.VerifiedEmail
	}
	return identity, nil
}
