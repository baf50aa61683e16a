package formatter

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/spotools/internal/services"
	"github.com/desertthunder/spotools/internal/shared"
)

func ptr[T any](v T) *T { return &v }

func TestRender(t *testing.T) {
	t.Run("Profile", func(t *testing.T) {
		data, err := Render(&services.Profile{ID: "u1", DisplayName: ptr("Una"), Followers: 3})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"ID:        u1", "Name:      Una", "Email:     -", "Followers: 3"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got:\n%s", want, output)
			}
		}
	})

	t.Run("Track Search", func(t *testing.T) {
		search := &services.TrackSearch{
			Total:  40,
			Limit:  2,
			Offset: 10,
			Tracks: []services.Track{
				{ID: "t1", Name: "Song One", Artists: []string{"A", "B"}, Album: ptr("Album"), DurationMS: 185000, URI: "spotify:track:t1"},
				{ID: "t2", Name: "Song Two", Artists: []string{}, DurationMS: 61000, URI: "spotify:track:t2"},
			},
		}

		data, err := Render(search)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Tracks 11-12 of 40\n") {
			t.Errorf("unexpected header:\n%s", output)
		}
		if !strings.Contains(output, "11. A, B - Song One (Album) [3:05]") {
			t.Errorf("missing first track, got:\n%s", output)
		}
		if !strings.Contains(output, "12. Unknown Artist - Song Two [1:01]") {
			t.Errorf("missing second track, got:\n%s", output)
		}
	})

	t.Run("Empty Track Search", func(t *testing.T) {
		data, _ := Render(&services.TrackSearch{Tracks: []services.Track{}})
		if string(data) != "Tracks 0-0 of 0\n\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("Playlist Page", func(t *testing.T) {
		page := &services.PlaylistPage{
			Total: 1,
			Limit: 20,
			Playlists: []services.Playlist{
				{ID: "p1", Name: "Mix", Description: ptr("late night"), Public: ptr(false), Collaborative: true, OwnerID: ptr("u1"), TracksTotal: 9},
			},
		}

		data, err := Render(page)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"1. Mix [private, collaborative, 9 tracks]", "id: p1  owner: u1", "late night"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got:\n%s", want, output)
			}
		}
	})

	t.Run("Created Playlist", func(t *testing.T) {
		data, err := Render(&services.CreatedPlaylist{ID: "p9", Name: "New", ExternalURL: ptr("https://open.spotify.com/playlist/p9")})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `Created playlist "New"`) || !strings.Contains(output, "Visibility: unknown") {
			t.Errorf("unexpected output:\n%s", output)
		}
		if !strings.Contains(output, "https://open.spotify.com/playlist/p9") {
			t.Errorf("missing URL, got:\n%s", output)
		}
	})

	t.Run("Falls Back To JSON", func(t *testing.T) {
		data, err := Render(map[string]int{"n": 1})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if string(data) != "{\n  \"n\": 1\n}\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("Unencodable Value", func(t *testing.T) {
		if _, err := Render(make(chan int)); err == nil {
			t.Error("expected error for channel value")
		}
	})
}

func TestTable(t *testing.T) {
	t.Run("Tracks", func(t *testing.T) {
		data, err := Table(&services.TrackSearch{
			Total:  7,
			Offset: 4,
			Tracks: []services.Track{{Name: "Song One", Artists: []string{"A"}, Album: ptr("Album"), DurationMS: 185000}},
		})
		if err != nil {
			t.Fatalf("Table failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"TITLE", "Song One", "Album", "3:05", "│ 5 "} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in table, got:\n%s", want, output)
			}
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		data, err := Table(&services.PlaylistPage{
			Total:     1,
			Playlists: []services.Playlist{{ID: "p1", Name: "Mix", TracksTotal: 3}},
		})
		if err != nil {
			t.Fatalf("Table failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Mix") || !strings.Contains(output, "unknown") || !strings.Contains(output, "p1") {
			t.Errorf("unexpected table:\n%s", output)
		}
	})

	t.Run("Unsupported Output", func(t *testing.T) {
		if _, err := Table(&services.Profile{}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestTracksToCSV(t *testing.T) {
	search := &services.TrackSearch{
		Tracks: []services.Track{
			{ID: "t1", Name: "Song, One", Artists: []string{"A", "B"}, Album: ptr("Album"), DurationMS: 1000, URI: "spotify:track:t1"},
			{ID: "t2", Name: "Song Two", URI: "spotify:track:t2"},
		},
	}

	data, err := TracksToCSV(search)
	if err != nil {
		t.Fatalf("TracksToCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "ID,Title,Artist,Album,Duration,URI" {
		t.Errorf("unexpected headers %v", records[0])
	}
	if records[1][1] != "Song, One" || records[1][2] != "A; B" || records[1][4] != "1000" {
		t.Errorf("unexpected first record %v", records[1])
	}
	if records[2][3] != "" {
		t.Errorf("expected empty album, got %q", records[2][3])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{999, "0:00"},
		{61000, "1:01"},
		{3599000, "59:59"},
		{3600000, "1:00:00"},
		{3725000, "1:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestVisibility(t *testing.T) {
	if got := Visibility(nil, false); got != "unknown" {
		t.Errorf("got %q", got)
	}
	if got := Visibility(ptr(true), false); got != "public" {
		t.Errorf("got %q", got)
	}
	if got := Visibility(ptr(false), true); got != "private, collaborative" {
		t.Errorf("got %q", got)
	}
}
