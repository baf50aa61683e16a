// Request executor for the Spotify Web API

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotools/internal/shared"
	"golang.org/x/oauth2"
)

// maxErrorDetail caps how much of a failed response body ends up in a [RemoteAPIError].
const maxErrorDetail = 400

// APIService issues bearer-authenticated JSON requests against a base URL.
//
// It never retries and never caches; every call is independent.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewAPIService creates a new API service instance for the given base URL.
func NewAPIService(baseURL string, client *http.Client, logger *log.Logger) *APIService {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NopLogger()
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Do sends method to baseURL+path and returns the JSON body of a 2xx response.
//
// path must already carry its query string. A non-nil body is encoded as JSON.
// An empty 2xx body is returned as JSON null.
func (a *APIService) Do(ctx context.Context, token, method, path string, body any) (json.RawMessage, error) {
	fullURL := a.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	a.logger.Debug("spotify request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteAPIError{Status: resp.StatusCode, Detail: truncate(string(data), maxErrorDetail)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s %s returned a non-JSON body", shared.ErrDecode, method, path)
	}

	return json.RawMessage(data), nil
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
