package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/invopop/jsonschema"
)

// Operation names, shared by the tool registry and validation errors.
const (
	OpGetMe           = "spotify_get_me"
	OpSearchTracks    = "spotify_search_tracks"
	OpListMyPlaylists = "spotify_list_my_playlists"
	OpCreatePlaylist  = "spotify_create_playlist"
)

const (
	maxPageLimit         = 50
	maxPlaylistName      = 100
	maxPlaylistDesc      = 300
	defaultSearchLimit   = 10
	defaultPlaylistLimit = 20
)

// GetMeInput takes no fields.
type GetMeInput struct{}

// SearchTracksInput is the input of [SpotifyService.SearchTracks].
type SearchTracksInput struct {
	Query  string `json:"query" jsonschema:"minLength=1" jsonschema_description:"Search text. Spotify field filters such as artist: or year: are allowed."`
	Limit  int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=10" jsonschema_description:"Maximum number of tracks to return."`
	Offset int    `json:"offset,omitempty" jsonschema:"minimum=0,default=0" jsonschema_description:"Index of the first track to return."`
	Market string `json:"market,omitempty" jsonschema:"pattern=^[A-Za-z]{2}$" jsonschema_description:"Optional ISO 3166-1 alpha-2 country code."`
}

// DefaultSearchTracksInput returns an input with the documented defaults filled in.
func DefaultSearchTracksInput(query string) SearchTracksInput {
	return SearchTracksInput{Query: query, Limit: defaultSearchLimit}
}

func (in SearchTracksInput) Validate() error {
	var issues []FieldIssue
	if strings.TrimSpace(in.Query) == "" {
		issues = append(issues, FieldIssue{Field: "query", Message: "must not be empty"})
	}
	issues = append(issues, pageIssues(in.Limit, in.Offset)...)
	if in.Market != "" && !isCountryCode(in.Market) {
		issues = append(issues, FieldIssue{Field: "market", Message: "must be a 2-letter country code"})
	}
	return validationResult(OpSearchTracks, issues)
}

// ListMyPlaylistsInput is the input of [SpotifyService.ListMyPlaylists].
type ListMyPlaylistsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=20" jsonschema_description:"Maximum number of playlists to return."`
	Offset int `json:"offset,omitempty" jsonschema:"minimum=0,default=0" jsonschema_description:"Index of the first playlist to return."`
}

// DefaultListMyPlaylistsInput returns an input with the documented defaults filled in.
func DefaultListMyPlaylistsInput() ListMyPlaylistsInput {
	return ListMyPlaylistsInput{Limit: defaultPlaylistLimit}
}

func (in ListMyPlaylistsInput) Validate() error {
	return validationResult(OpListMyPlaylists, pageIssues(in.Limit, in.Offset))
}

// CreatePlaylistInput is the input of [SpotifyService.CreatePlaylist].
//
// Confirm must be true; it is the write guard for the only mutating operation.
type CreatePlaylistInput struct {
	UserID        string `json:"userId,omitempty" jsonschema_description:"Owner account id. Defaults to the configured user, then to the current user."`
	Name          string `json:"name" jsonschema:"minLength=1,maxLength=100" jsonschema_description:"Playlist name."`
	Description   string `json:"description,omitempty" jsonschema:"maxLength=300" jsonschema_description:"Playlist description."`
	Public        bool   `json:"public,omitempty" jsonschema:"default=false" jsonschema_description:"Whether the playlist is public."`
	Collaborative bool   `json:"collaborative,omitempty" jsonschema:"default=false" jsonschema_description:"Whether other users may edit the playlist. Cannot be combined with public."`
	Confirm       bool   `json:"confirm" jsonschema_description:"Must be true. Confirms that a playlist should be created."`
}

func (in CreatePlaylistInput) Validate() error {
	var issues []FieldIssue

	if n := utf8.RuneCountInString(in.Name); n < 1 || n > maxPlaylistName {
		issues = append(issues, FieldIssue{Field: "name", Message: fmt.Sprintf("must be between 1 and %d characters", maxPlaylistName)})
	}
	if utf8.RuneCountInString(in.Description) > maxPlaylistDesc {
		issues = append(issues, FieldIssue{Field: "description", Message: fmt.Sprintf("must be at most %d characters", maxPlaylistDesc)})
	}
	if in.Public && in.Collaborative {
		issues = append(issues, FieldIssue{Field: "collaborative", Message: "a collaborative playlist cannot be public"})
	}
	if !in.Confirm {
		issues = append(issues, FieldIssue{Field: "confirm", Message: "must be true to create a playlist"})
	}

	return validationResult(OpCreatePlaylist, issues)
}

// JSONSchemaExtend pins confirm to the literal true and encodes the public/collaborative exclusion.
func (CreatePlaylistInput) JSONSchemaExtend(s *jsonschema.Schema) {
	if confirm, ok := s.Properties.Get("confirm"); ok {
		confirm.Const = true
	}

	ifProps := jsonschema.NewProperties()
	ifProps.Set("public", &jsonschema.Schema{Const: true})
	thenProps := jsonschema.NewProperties()
	thenProps.Set("collaborative", &jsonschema.Schema{Enum: []any{false}})

	s.If = &jsonschema.Schema{Properties: ifProps, Required: []string{"public"}}
	s.Then = &jsonschema.Schema{Properties: thenProps}
}

// DecodeGetMeInput rejects any field; the operation takes none.
func DecodeGetMeInput(raw json.RawMessage) (GetMeInput, error) {
	var in GetMeInput
	return in, decodeInput(OpGetMe, raw, &in)
}

// DecodeSearchTracksInput decodes raw over the defaults and validates the result.
func DecodeSearchTracksInput(raw json.RawMessage) (SearchTracksInput, error) {
	in := DefaultSearchTracksInput("")
	if err := decodeInput(OpSearchTracks, raw, &in); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// DecodeListMyPlaylistsInput decodes raw over the defaults and validates the result.
func DecodeListMyPlaylistsInput(raw json.RawMessage) (ListMyPlaylistsInput, error) {
	in := DefaultListMyPlaylistsInput()
	if err := decodeInput(OpListMyPlaylists, raw, &in); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// DecodeCreatePlaylistInput decodes raw and validates the result, including the confirm guard.
func DecodeCreatePlaylistInput(raw json.RawMessage) (CreatePlaylistInput, error) {
	var in CreatePlaylistInput
	if err := decodeInput(OpCreatePlaylist, raw, &in); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// decodeInput strictly decodes a JSON object into dst. Empty input and null count as {}.
func decodeInput(op string, raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		if _, extra := dec.Token(); extra != io.EOF {
			return &ValidationError{Operation: op, Issues: []FieldIssue{{Message: "input must be a single JSON object"}}}
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		msg := fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type.Kind().String()), typeErr.Value)
		if field == "" {
			msg = "input must be a JSON object"
		}
		return &ValidationError{Operation: op, Issues: []FieldIssue{{Field: field, Message: msg}}}
	}

	msg := strings.TrimPrefix(err.Error(), "json: ")
	return &ValidationError{Operation: op, Issues: []FieldIssue{{Message: msg}}}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int64":
		return "integer"
	case "bool":
		return "boolean"
	default:
		return goKind
	}
}

func pageIssues(limit, offset int) []FieldIssue {
	var issues []FieldIssue
	if limit < 1 || limit > maxPageLimit {
		issues = append(issues, FieldIssue{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxPageLimit)})
	}
	if offset < 0 {
		issues = append(issues, FieldIssue{Field: "offset", Message: "must be 0 or greater"})
	}
	return issues
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func validationResult(op string, issues []FieldIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Operation: op, Issues: issues}
}
