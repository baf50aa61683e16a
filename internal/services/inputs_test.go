package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/spotools/internal/shared"
)

func issueFor(t *testing.T, err error, field string) FieldIssue {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	issue, ok := vErr.Issue(field)
	if !ok {
		t.Fatalf("expected an issue for %q, got %v", field, vErr.Issues)
	}
	return issue
}

func TestDecodeSearchTracksInput(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		in, err := DecodeSearchTracksInput(json.RawMessage(`{"query":"daft punk"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if in.Limit != 10 || in.Offset != 0 || in.Market != "" {
			t.Errorf("unexpected defaults %+v", in)
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		tc := []struct {
			name  string
			raw   string
			field string
		}{
			{name: "limit zero", raw: `{"query":"x","limit":0}`, field: "limit"},
			{name: "limit too large", raw: `{"query":"x","limit":51}`, field: "limit"},
			{name: "negative offset", raw: `{"query":"x","offset":-1}`, field: "offset"},
			{name: "fractional limit", raw: `{"query":"x","limit":2.5}`, field: "limit"},
			{name: "string limit", raw: `{"query":"x","limit":"5"}`, field: "limit"},
			{name: "blank query", raw: `{"query":"  "}`, field: "query"},
			{name: "missing query", raw: `{}`, field: "query"},
			{name: "long market", raw: `{"query":"x","market":"USA"}`, field: "market"},
			{name: "numeric market", raw: `{"query":"x","market":"1A"}`, field: "market"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := DecodeSearchTracksInput(json.RawMessage(tt.raw))
				issueFor(t, err, tt.field)
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Error("expected error to wrap ErrInvalidInput")
				}
			})
		}
	})

	t.Run("Accepts Edges", func(t *testing.T) {
		for _, raw := range []string{`{"query":"x","limit":1}`, `{"query":"x","limit":50,"offset":1000}`, `{"query":"x","market":"se"}`} {
			if _, err := DecodeSearchTracksInput(json.RawMessage(raw)); err != nil {
				t.Errorf("%s: expected no error, got %v", raw, err)
			}
		}
	})

	t.Run("Unknown Field", func(t *testing.T) {
		_, err := DecodeSearchTracksInput(json.RawMessage(`{"query":"x","type":"album"}`))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Not An Object", func(t *testing.T) {
		_, err := DecodeSearchTracksInput(json.RawMessage(`["x"]`))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestDecodeListMyPlaylistsInput(t *testing.T) {
	t.Run("Empty Input Uses Defaults", func(t *testing.T) {
		for _, raw := range []string{``, `null`, `{}`} {
			in, err := DecodeListMyPlaylistsInput(json.RawMessage(raw))
			if err != nil {
				t.Fatalf("%q: expected no error, got %v", raw, err)
			}
			if in.Limit != 20 || in.Offset != 0 {
				t.Errorf("%q: unexpected defaults %+v", raw, in)
			}
		}
	})

	t.Run("Rejects Out Of Range", func(t *testing.T) {
		_, err := DecodeListMyPlaylistsInput(json.RawMessage(`{"limit":100}`))
		issueFor(t, err, "limit")
	})
}

func TestDecodeGetMeInput(t *testing.T) {
	if _, err := DecodeGetMeInput(json.RawMessage(`{}`)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if _, err := DecodeGetMeInput(json.RawMessage(`{"id":"x"}`)); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDecodeCreatePlaylistInput(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		in, err := DecodeCreatePlaylistInput(json.RawMessage(`{"name":"Road Trip","description":"songs","confirm":true}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if in.Public || in.Collaborative {
			t.Error("expected visibility flags to default to false")
		}
	})

	t.Run("Rejects Public And Collaborative", func(t *testing.T) {
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"public":true,"collaborative":true,"confirm":true,"name":"x"}`))
		issue := issueFor(t, err, "collaborative")
		if issue.Message == "" {
			t.Error("expected a message on the collaborative issue")
		}
	})

	t.Run("Rejects Missing Confirm", func(t *testing.T) {
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"name":"x"}`))
		issueFor(t, err, "confirm")
	})

	t.Run("Rejects False Confirm", func(t *testing.T) {
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"name":"x","confirm":false}`))
		issueFor(t, err, "confirm")
	})

	t.Run("Rejects Non-Boolean Confirm", func(t *testing.T) {
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"name":"x","confirm":"true"}`))
		issueFor(t, err, "confirm")
	})

	t.Run("Name And Description Lengths", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"name":"` + string(long) + `","confirm":true}`))
		issueFor(t, err, "name")

		_, err = DecodeCreatePlaylistInput(json.RawMessage(`{"name":"","confirm":true}`))
		issueFor(t, err, "name")

		desc := make([]byte, 301)
		for i := range desc {
			desc[i] = 'd'
		}
		_, err = DecodeCreatePlaylistInput(json.RawMessage(`{"name":"x","description":"` + string(desc) + `","confirm":true}`))
		issueFor(t, err, "description")
	})

	t.Run("Reports Every Issue", func(t *testing.T) {
		_, err := DecodeCreatePlaylistInput(json.RawMessage(`{"public":true,"collaborative":true}`))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(vErr.Issues) != 3 {
			t.Errorf("expected name, collaborative and confirm issues, got %v", vErr.Issues)
		}
		if vErr.Operation != OpCreatePlaylist {
			t.Errorf("expected operation %s, got %s", OpCreatePlaylist, vErr.Operation)
		}
	})
}
