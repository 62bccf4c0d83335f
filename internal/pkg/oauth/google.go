package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleService signs existing employees in with their Google account.
type GoogleService interface {
	// GenerateState returns the anti-forgery value stored in the state cookie.
	GenerateState(userAgent string) string
	// RedirectURL is the Google consent page for state.
	RedirectURL(state string) string
	// VerifyToken trades the callback code for a token.
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyUser loads the account behind token. Unverified emails are rejected.
	VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleAccount, error)
}

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrEmailNotVerified = errors.New("google account email is not verified")
	ErrEmptyAccount     = errors.New("google account has no id or email")
)

// GoogleAccount is the part of the Google profile used to match an employee.
type GoogleAccount struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type GoogleServiceImpl struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string) GoogleService {
	return &GoogleServiceImpl{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
}

// GenerateState returns base64(random.userAgent); an empty string means the
// random source failed and the login must not proceed.
func (g *GoogleServiceImpl) GenerateState(userAgent string) string {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return ""
	}
	raw := base64.URLEncoding.EncodeToString(nonce) + "." + userAgent
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func (g *GoogleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *GoogleServiceImpl) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange google sign-in code: %w", err)
	}
	return token, nil
}

func (g *GoogleServiceImpl) VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleAccount, error) {
	resp, err := g.config.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return GoogleAccount{}, fmt.Errorf("fetch google account: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleAccount{}, fmt.Errorf("fetch google account: unexpected status %d", resp.StatusCode)
	}

	var account GoogleAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return GoogleAccount{}, fmt.Errorf("decode google account: %w", err)
	}
	switch {
	case account.GoogleID == "" || account.Email == "":
		return GoogleAccount{}, ErrEmptyAccount
	case !account.VerifiedEmail:
		return GoogleAccount{}, ErrEmailNotVerified
	}
	return account, nil
}
