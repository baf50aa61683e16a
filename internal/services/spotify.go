// Spotify operation handlers
//
// Spotify API reference: https://developer.spotify.com/documentation/web-api/reference/

package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotools/internal/shared"
)

// Profile is the normalized output of [SpotifyService.GetMe].
type Profile struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	Country     *string `json:"country"`
	Product     *string `json:"product"` // premium, free, etc.
	Followers   int     `json:"followers"`
	URI         *string `json:"uri"`
}

// Track is a single search hit.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       *string  `json:"album"`
	DurationMS  int      `json:"durationMs"`
	Popularity  int      `json:"popularity"`
	URI         string   `json:"uri"`
	ExternalURL *string  `json:"externalUrl"`
}

// TrackSearch is the normalized output of [SpotifyService.SearchTracks].
type TrackSearch struct {
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Tracks []Track `json:"tracks"`
}

// Playlist is a simplified playlist as listed by [SpotifyService.ListMyPlaylists].
//
// Public is tri-state: Spotify reports null when the visibility is not known.
type Playlist struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Public        *bool   `json:"public"`
	Collaborative bool    `json:"collaborative"`
	OwnerID       *string `json:"ownerId"`
	TracksTotal   int     `json:"tracksTotal"`
	SnapshotID    *string `json:"snapshotId"`
	ExternalURL   *string `json:"externalUrl"`
}

// PlaylistPage is the normalized output of [SpotifyService.ListMyPlaylists].
type PlaylistPage struct {
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	Playlists []Playlist `json:"playlists"`
}

// CreatedPlaylist is the normalized output of [SpotifyService.CreatePlaylist].
type CreatedPlaylist struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Public        *bool   `json:"public"`
	Collaborative bool    `json:"collaborative"`
	Description   *string `json:"description"`
	SnapshotID    *string `json:"snapshotId"`
	ExternalURL   *string `json:"externalUrl"`
	OwnerID       *string `json:"ownerId"`
}

type createPlaylistBody struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Public        bool   `json:"public"`
	Collaborative bool   `json:"collaborative"`
}

// SpotifyService implements the four tool operations on top of an [APIService].
//
// It holds no mutable state; one instance may serve concurrent invocations.
type SpotifyService struct {
	config RuntimeConfig
	api    *APIService
	lookup LookupFunc
	logger *log.Logger
}

// ServiceOption customizes a [SpotifyService].
type ServiceOption func(*serviceSettings)

type serviceSettings struct {
	httpClient *http.Client
	lookup     LookupFunc
	logger     *log.Logger
}

// WithHTTPClient sets the client used for outbound requests. Defaults to [http.DefaultClient].
func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *serviceSettings) { s.httpClient = c }
}

// WithLookup sets the fallback credential source. Defaults to [os.LookupEnv].
func WithLookup(fn LookupFunc) ServiceOption {
	return func(s *serviceSettings) { s.lookup = fn }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) ServiceOption {
	return func(s *serviceSettings) { s.logger = l }
}

// NewSpotifyService creates a service bound to an already resolved configuration.
func NewSpotifyService(cfg RuntimeConfig, opts ...ServiceOption) *SpotifyService {
	var settings serviceSettings
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.logger == nil {
		settings.logger = shared.NopLogger()
	}

	return &SpotifyService{
		config: cfg,
		api:    NewAPIService(cfg.APIBaseURL(), settings.httpClient, settings.logger),
		lookup: settings.lookup,
		logger: settings.logger,
	}
}

// Config returns the configuration the service was built with.
func (s *SpotifyService) Config() RuntimeConfig {
	return s.config
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetMe fetches the current user's profile.
func (s *SpotifyService) GetMe(ctx context.Context) (*Profile, error) {
	token, err := ResolveCredential(s.config, s.lookup)
	if err != nil {
		return nil, err
	}

	data, err := s.api.Do(ctx, token, http.MethodGet, "/me", nil)
	if err != nil {
		return nil, err
	}

	return mapProfile(data), nil
}

// SearchTracks runs a single-page track search.
func (s *SpotifyService) SearchTracks(ctx context.Context, in SearchTracksInput) (*TrackSearch, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	token, err := ResolveCredential(s.config, s.lookup)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", in.Query)
	query.Set("type", "track")
	query.Set("limit", strconv.Itoa(in.Limit))
	query.Set("offset", strconv.Itoa(in.Offset))
	if in.Market != "" {
		query.Set("market", strings.ToUpper(in.Market))
	}

	data, err := s.api.Do(ctx, token, http.MethodGet, "/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return mapTrackSearch(data, in.Limit, in.Offset), nil
}

// ListMyPlaylists lists one page of the current user's playlists.
func (s *SpotifyService) ListMyPlaylists(ctx context.Context, in ListMyPlaylistsInput) (*PlaylistPage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	token, err := ResolveCredential(s.config, s.lookup)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(in.Limit))
	query.Set("offset", strconv.Itoa(in.Offset))

	data, err := s.api.Do(ctx, token, http.MethodGet, "/me/playlists?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return mapPlaylistPage(data, in.Limit, in.Offset), nil
}

// CreatePlaylist creates a playlist owned by the resolved account.
//
// The account is in.UserID, then the configured default, then the id reported by GET /me.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*CreatedPlaylist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	token, err := ResolveCredential(s.config, s.lookup)
	if err != nil {
		return nil, err
	}

	accountID := strings.TrimSpace(in.UserID)
	if accountID == "" {
		accountID = s.config.DefaultAccountID()
	}
	if accountID == "" {
		me, err := s.api.Do(ctx, token, http.MethodGet, "/me", nil)
		if err != nil {
			return nil, err
		}
		if accountID = str(me, "id"); accountID == "" {
			return nil, &UserResolutionError{}
		}
	}

	body := createPlaylistBody{
		Name:          in.Name,
		Description:   in.Description,
		Public:        in.Public,
		Collaborative: in.Collaborative,
	}

	data, err := s.api.Do(ctx, token, http.MethodPost, "/users/"+url.PathEscape(accountID)+"/playlists", body)
	if err != nil {
		return nil, err
	}

	created := mapCreatedPlaylist(data)
	s.logger.Info("playlist created", "id", created.ID, "owner", accountID)

	return created, nil
}

func mapProfile(data []byte) *Profile {
	return &Profile{
		ID:          str(data, "id"),
		DisplayName: optStr(data, "display_name"),
		Email:       optStr(data, "email"),
		Country:     optStr(data, "country"),
		Product:     optStr(data, "product"),
		Followers:   num(data, "followers", "total"),
		URI:         optStr(data, "uri"),
	}
}

func mapTrackSearch(data []byte, limit, offset int) *TrackSearch {
	out := &TrackSearch{
		Total:  num(data, "tracks", "total"),
		Limit:  numOr(data, limit, "tracks", "limit"),
		Offset: numOr(data, offset, "tracks", "offset"),
		Tracks: []Track{},
	}

	objects(data, func(item []byte) {
		out.Tracks = append(out.Tracks, mapTrack(item))
	}, "tracks", "items")

	return out
}

func mapTrack(item []byte) Track {
	artists := []string{}
	objects(item, func(artist []byte) {
		if name := str(artist, "name"); name != "" {
			artists = append(artists, name)
		}
	}, "artists")

	return Track{
		ID:          str(item, "id"),
		Name:        str(item, "name"),
		Artists:     artists,
		Album:       optStr(item, "album", "name"),
		DurationMS:  num(item, "duration_ms"),
		Popularity:  num(item, "popularity"),
		URI:         str(item, "uri"),
		ExternalURL: optStr(item, "external_urls", "spotify"),
	}
}

func mapPlaylistPage(data []byte, limit, offset int) *PlaylistPage {
	out := &PlaylistPage{
		Total:     num(data, "total"),
		Limit:     numOr(data, limit, "limit"),
		Offset:    numOr(data, offset, "offset"),
		Playlists: []Playlist{},
	}

	objects(data, func(item []byte) {
		out.Playlists = append(out.Playlists, Playlist{
			ID:            str(item, "id"),
			Name:          str(item, "name"),
			Description:   optStr(item, "description"),
			Public:        optBool(item, "public"),
			Collaborative: boolean(item, "collaborative"),
			OwnerID:       optStr(item, "owner", "id"),
			TracksTotal:   num(item, "tracks", "total"),
			SnapshotID:    optStr(item, "snapshot_id"),
			ExternalURL:   optStr(item, "external_urls", "spotify"),
		})
	}, "items")

	return out
}

func mapCreatedPlaylist(data []byte) *CreatedPlaylist {
	return &CreatedPlaylist{
		ID:            str(data, "id"),
		Name:          str(data, "name"),
		Public:        optBool(data, "public"),
		Collaborative: boolean(data, "collaborative"),
		Description:   optStr(data, "description"),
		SnapshotID:    optStr(data, "snapshot_id"),
		ExternalURL:   optStr(data, "external_urls", "spotify"),
		OwnerID:       optStr(data, "owner", "id"),
	}
}
