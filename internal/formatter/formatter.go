// package formatter renders tool outputs as plain text or CSV for the CLI
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotools/internal/services"
	"github.com/desertthunder/spotools/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
)

const placeholder = "-"

// Render dispatches on the output type of a tool and returns its text form.
//
// Unknown values are rendered as indented JSON.
func Render(v any) ([]byte, error) {
	switch out := v.(type) {
	case *services.Profile:
		return ProfileToText(out), nil
	case *services.TrackSearch:
		return TracksToText(out), nil
	case *services.PlaylistPage:
		return PlaylistsToText(out), nil
	case *services.CreatedPlaylist:
		return CreatedToText(out), nil
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode output: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// ProfileToText renders a user profile as aligned key/value lines.
func ProfileToText(p *services.Profile) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("ID:        %s\n", p.ID))
	buf.WriteString(fmt.Sprintf("Name:      %s\n", orDash(p.DisplayName)))
	buf.WriteString(fmt.Sprintf("Email:     %s\n", orDash(p.Email)))
	buf.WriteString(fmt.Sprintf("Country:   %s\n", orDash(p.Country)))
	buf.WriteString(fmt.Sprintf("Product:   %s\n", orDash(p.Product)))
	buf.WriteString(fmt.Sprintf("Followers: %d\n", p.Followers))
	buf.WriteString(fmt.Sprintf("URI:       %s\n", orDash(p.URI)))

	return buf.Bytes()
}

// TracksToText renders a page of search results, numbered from the page offset.
func TracksToText(s *services.TrackSearch) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Tracks %s of %d\n\n", pageRange(s.Offset, len(s.Tracks)), s.Total))

	for i, track := range s.Tracks {
		albumPart := ""
		if track.Album != nil && *track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", *track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n",
			s.Offset+i+1, artistList(track.Artists), track.Name, albumPart, FormatDuration(track.DurationMS)))
		buf.WriteString(fmt.Sprintf("   %s\n", track.URI))
	}

	return buf.Bytes()
}

// PlaylistsToText renders a page of playlists, numbered from the page offset.
func PlaylistsToText(p *services.PlaylistPage) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlists %s of %d\n\n", pageRange(p.Offset, len(p.Playlists)), p.Total))

	for i, pl := range p.Playlists {
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %d tracks]\n", p.Offset+i+1, pl.Name, Visibility(pl.Public, pl.Collaborative), pl.TracksTotal))
		buf.WriteString(fmt.Sprintf("   id: %s  owner: %s\n", pl.ID, orDash(pl.OwnerID)))
		if pl.Description != nil && *pl.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", *pl.Description))
		}
	}

	return buf.Bytes()
}

// CreatedToText renders the result of a playlist creation.
func CreatedToText(c *services.CreatedPlaylist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Created playlist %q\n", c.Name))
	buf.WriteString(fmt.Sprintf("ID:         %s\n", c.ID))
	buf.WriteString(fmt.Sprintf("Owner:      %s\n", orDash(c.OwnerID)))
	buf.WriteString(fmt.Sprintf("Visibility: %s\n", Visibility(c.Public, c.Collaborative)))
	if c.Description != nil && *c.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", *c.Description))
	}
	buf.WriteString(fmt.Sprintf("URL:        %s\n", orDash(c.ExternalURL)))

	return buf.Bytes()
}

// Table renders list outputs as a bordered table. Only track searches and playlist pages have a table form.
func Table(v any) ([]byte, error) {
	switch out := v.(type) {
	case *services.TrackSearch:
		return TracksToTable(out), nil
	case *services.PlaylistPage:
		return PlaylistsToTable(out), nil
	default:
		return nil, fmt.Errorf("%w: no table form for %T", shared.ErrInvalidArgument, v)
	}
}

// TracksToTable renders search results with one row per track.
func TracksToTable(s *services.TrackSearch) []byte {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Duration"})
	for i, track := range s.Tracks {
		album := ""
		if track.Album != nil {
			album = *track.Album
		}
		t.AppendRow(table.Row{s.Offset + i + 1, track.Name, artistList(track.Artists), album, FormatDuration(track.DurationMS)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", s.Total})
	return []byte(t.Render() + "\n")
}

// PlaylistsToTable renders a playlist page with one row per playlist.
func PlaylistsToTable(p *services.PlaylistPage) []byte {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Name", "Visibility", "Tracks", "ID"})
	for i, pl := range p.Playlists {
		t.AppendRow(table.Row{p.Offset + i + 1, pl.Name, Visibility(pl.Public, pl.Collaborative), pl.TracksTotal, pl.ID})
	}
	t.AppendFooter(table.Row{"", "", "Total", p.Total, ""})
	return []byte(t.Render() + "\n")
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// TracksToCSV converts search results to CSV with columns: ID, Title, Artist, Album, Duration, URI
func TracksToCSV(s *services.TrackSearch) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range s.Tracks {
		album := ""
		if track.Album != nil {
			album = *track.Album
		}
		record := []string{
			track.ID,
			track.Name,
			strings.Join(track.Artists, "; "),
			album,
			strconv.Itoa(track.DurationMS),
			track.URI,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FormatDuration formats milliseconds as m:ss, or h:mm:ss for an hour or more.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Visibility describes a playlist's public flag, which Spotify may leave unknown.
func Visibility(public *bool, collaborative bool) string {
	var v string
	switch {
	case public == nil:
		v = "unknown"
	case *public:
		v = "public"
	default:
		v = "private"
	}
	if collaborative {
		v += ", collaborative"
	}
	return v
}

func artistList(artists []string) string {
	if len(artists) == 0 {
		return "Unknown Artist"
	}
	return strings.Join(artists, ", ")
}

func pageRange(offset, n int) string {
	if n == 0 {
		return "0-0"
	}
	return fmt.Sprintf("%d-%d", offset+1, offset+n)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}
