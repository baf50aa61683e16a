// Package services implements the Spotify operations behind the agent tools.
//
// # Configuration
//
// [ResolveConfig] turns partial [Options] into an immutable [RuntimeConfig]: the token source name defaults to
// SPOTIFY_ACCESS_TOKEN and the API base URL to https://api.spotify.com/v1. A malformed base URL fails with a
// [ConfigValidationError] before anything touches the network.
//
// [ResolveCredential] prefers the explicit access token and otherwise reads the named environment variable.
//
// # Request Execution
//
// [APIService.Do] sends one bearer-authenticated request and returns the raw JSON body. Non-2xx responses
// become a [RemoteAPIError] carrying the status and at most 400 characters of the body.
// There are no retries and no caching.
//
// # Operations
//
// [SpotifyService] exposes GetMe, SearchTracks, ListMyPlaylists and CreatePlaylist. Each validates its input,
// calls the API and maps the response into a stable output shape: ids default to "", numbers to 0, optional
// fields to nil (JSON null) and lists to empty slices. Raw responses are read with tolerant accessors and never
// leave this package.
//
// CreatePlaylist is the only mutating operation. Its input must carry Confirm=true, and a playlist cannot be both
// public and collaborative; both rules are part of [CreatePlaylistInput.Validate] and of the generated schema.
//
// # Error Handling
//
// Typed errors wrap sentinels from the shared package so callers can use errors.Is:
//   - [ConfigValidationError] : [shared.ErrInvalidConfig]
//   - [ValidationError] : [shared.ErrInvalidInput]
//   - [MissingCredentialError] : [shared.ErrMissingCredentials]
//   - [UserResolutionError] : [shared.ErrUserResolution]
//   - [RemoteAPIError] : [shared.ErrAPIRequest]
package services
