package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Veraticus/photomatch/internal/common"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Reader fetches cell values from Google Sheets.
type Reader struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewReader creates a reader authenticated per config.
func NewReader(ctx context.Context, config Config, logger *slog.Logger) (*Reader, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Reader{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Values returns the formatted cell values of readRange as strings.
// An empty readRange reads DefaultRange.
func (r *Reader) Values(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	if readRange == "" {
		readRange = DefaultRange
	}

	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var callErr error
		resp, callErr = r.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
			ValueRenderOption("FORMATTED_VALUE").
			Context(ctx).
			Do()
		return classify(callErr)
	}, common.RetryOptions{
		MaxAttempts:  r.config.RetryAttempts,
		InitialDelay: r.config.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read spreadsheet %s: %w", spreadsheetID, err)
	}

	values := ToStrings(resp.Values)
	r.logger.Debug("Read spreadsheet values",
		"spreadsheet_id", spreadsheetID,
		"range", readRange,
		"rows", len(values))

	return values, nil
}

// ToStrings converts API cell values into strings.
func ToStrings(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}

// classify marks client errors other than rate limiting as not retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}
	return err
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var ts oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		ts = jwtConfig.TokenSource(ctx)
	} else {
		var err error
		ts, err = tokenSource(ctx, config)
		if err != nil {
			return nil, err
		}
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}
