package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Config carries everything needed to reach one spreadsheet.
// CredentialsFile takes precedence over CredentialsJSON when both are set.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
}

// NewService builds an authenticated Sheets API client from service-account
// credentials.
func NewService(ctx context.Context, cfg Config) (*sheetsapi.Service, error) {
	var creds []byte
	switch {
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		creds = data
	case cfg.CredentialsJSON != "":
		creds = []byte(cfg.CredentialsJSON)
	default:
		return nil, fmt.Errorf("google credentials are not configured")
	}

	jwt, err := google.JWTConfigFromJSON(creds, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}
