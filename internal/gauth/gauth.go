package gauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	sheets "google.golang.org/api/sheets/v4"

	"substation-inspection-backend/config"
)

// ErrNoCredentials is returned when neither an OAuth refresh token nor
// a service-account file is configured.
var ErrNoCredentials = errors.New("no google credentials configured")

var scopes = []string{drive.DriveScope, sheets.SpreadsheetsScope}

// NewHTTPClient builds an authenticated HTTP client for the Drive and
// Sheets APIs. A configured OAuth refresh token takes priority over a
// service-account credentials file.
func NewHTTPClient(ctx context.Context, cfg *config.GoogleConfig) (*http.Client, error) {
	if cfg.OAuthRefreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       scopes,
		}
		token := &oauth2.Token{RefreshToken: cfg.OAuthRefreshToken}
		return conf.Client(ctx, token), nil
	}

	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		jwtConf, err := google.JWTConfigFromJSON(data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service-account credentials: %w", err)
		}
		return jwtConf.Client(ctx), nil
	}

	return nil, ErrNoCredentials
}
