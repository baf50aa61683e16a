package services

import (
	"net/url"
	"os"
	"strings"
)

const (
	DefaultTokenSourceName = "SPOTIFY_ACCESS_TOKEN"
	DefaultAPIBaseURL      = "https://api.spotify.com/v1"
)

// Options is the partial, caller-supplied configuration for a tool set. Zero values take defaults.
type Options struct {
	AccessToken     string `json:"accessToken,omitempty"`
	TokenSourceName string `json:"tokenSourceName,omitempty"`
	APIBaseURL      string `json:"apiBaseUrl,omitempty"`
	DefaultUserID   string `json:"defaultUserId,omitempty"`
}

// RuntimeConfig is the fully defaulted configuration captured by a [SpotifyService].
//
// Fields are unexported so the value cannot change after [ResolveConfig] returns it.
type RuntimeConfig struct {
	credential       string
	sourceName       string
	baseURL          string
	defaultAccountID string
}

// Credential returns the explicit bearer token, if one was configured.
func (c RuntimeConfig) Credential() string { return c.credential }

// CredentialSourceName returns the environment variable consulted when no explicit token is set.
func (c RuntimeConfig) CredentialSourceName() string { return c.sourceName }

// APIBaseURL returns the absolute API root without a trailing slash.
func (c RuntimeConfig) APIBaseURL() string { return c.baseURL }

// DefaultAccountID returns the configured fallback account for playlist creation.
func (c RuntimeConfig) DefaultAccountID() string { return c.defaultAccountID }

// LookupFunc reads a named credential source. [os.LookupEnv] satisfies it.
type LookupFunc func(key string) (string, bool)

// ResolveConfig fills defaults and validates opts.
func ResolveConfig(opts Options) (RuntimeConfig, error) {
	cfg := RuntimeConfig{
		credential:       opts.AccessToken,
		sourceName:       strings.TrimSpace(opts.TokenSourceName),
		baseURL:          strings.TrimSpace(opts.APIBaseURL),
		defaultAccountID: strings.TrimSpace(opts.DefaultUserID),
	}

	if cfg.sourceName == "" {
		cfg.sourceName = DefaultTokenSourceName
	}
	if cfg.baseURL == "" {
		cfg.baseURL = DefaultAPIBaseURL
	}

	u, err := url.Parse(cfg.baseURL)
	if err != nil {
		return RuntimeConfig{}, &ConfigValidationError{Field: "apiBaseUrl", Value: cfg.baseURL, Reason: "is not a valid URL"}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return RuntimeConfig{}, &ConfigValidationError{Field: "apiBaseUrl", Value: cfg.baseURL, Reason: "must be an absolute http(s) URL"}
	}

	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")
	return cfg, nil
}

// ResolveCredential returns the bearer token for cfg.
//
// The explicit credential wins; otherwise the variable named by [RuntimeConfig.CredentialSourceName] is read
// through lookup (nil means [os.LookupEnv]). Both values are trimmed.
func ResolveCredential(cfg RuntimeConfig, lookup LookupFunc) (string, error) {
	if token := strings.TrimSpace(cfg.credential); token != "" {
		return token, nil
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}

	sourceName := cfg.sourceName
	if sourceName == "" {
		sourceName = DefaultTokenSourceName
	}

	if v, ok := lookup(sourceName); ok {
		if token := strings.TrimSpace(v); token != "" {
			return token, nil
		}
	}

	return "", &MissingCredentialError{SourceName: sourceName}
}
