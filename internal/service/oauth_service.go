package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type googleProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GoogleOAuthConfig carries the provider credentials. TokenURL and
// UserinfoURL default to Google's endpoints when empty.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenURL     string
	UserinfoURL  string
}

// OAuthService completes the provider handshake: it turns an authorization
// code into a verified (name, email) profile. Resolving that profile to a
// local account stays with AuthService.
type OAuthService interface {
	ExchangeGoogleCode(code string) (name, email string, err error)
}

type googleOAuthService struct {
	client *resty.Client
	cfg    GoogleOAuthConfig
	log    *zap.Logger
}

func NewGoogleOAuthService(cfg GoogleOAuthConfig, log *zap.Logger) OAuthService {
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://oauth2.googleapis.com/token"
	}
	if cfg.UserinfoURL == "" {
		cfg.UserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	}
	return &googleOAuthService{
		client: resty.New(),
		cfg:    cfg,
		log:    log,
	}
}

func (s *googleOAuthService) ExchangeGoogleCode(code string) (string, string, error) {
	if code == "" {
		return "", "", fmt.Errorf("%w: authorization code is required", ErrValidation)
	}

	resp, err := s.client.R().
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     s.cfg.ClientID,
			"client_secret": s.cfg.ClientSecret,
			"redirect_uri":  s.cfg.RedirectURL,
			"grant_type":    "authorization_code",
		}).
		Post(s.cfg.TokenURL)
	if err != nil {
		s.log.Error("oauth token exchange failed", zap.Error(err))
		return "", "", err
	}
	if resp.StatusCode() != http.StatusOK {
		s.log.Error("oauth token exchange rejected",
			zap.Int("status", resp.StatusCode()))
		return "", "", fmt.Errorf("oauth token exchange status: %d", resp.StatusCode())
	}

	var token googleTokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", "", err
	}
	if token.AccessToken == "" {
		return "", "", fmt.Errorf("oauth token exchange returned no access token")
	}

	resp, err = s.client.R().
		SetAuthToken(token.AccessToken).
		Get(s.cfg.UserinfoURL)
	if err != nil {
		s.log.Error("oauth userinfo request failed", zap.Error(err))
		return "", "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", "", fmt.Errorf("oauth userinfo status: %d", resp.StatusCode())
	}

	var profile googleProfile
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return "", "", err
	}
	if profile.Email == "" {
		return "", "", fmt.Errorf("oauth profile has no email")
	}
	return profile.Name, profile.Email, nil
}
