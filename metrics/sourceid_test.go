package metrics

import (
	"context"
	"errors"
	"testing"
)

func TestParseSourceID(t *testing.T) {
	tests := []struct {
		raw   string
		kind  Kind
		value string
		track string
	}{
		{"dQw4w9WgXcQ", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"youtube.com/watch?v=dQw4w9WgXcQ", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"https://youtu.be/dQw4w9WgXcQ", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", KindYouTubeVideo, "dQw4w9WgXcQ", ""},
		{"UCuAXFkgsw1L7xaCfnd5JJOw", KindYouTubeChannel, "UCuAXFkgsw1L7xaCfnd5JJOw", ""},
		{"https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw", KindYouTubeChannel, "UCuAXFkgsw1L7xaCfnd5JJOw", ""},
		{"lastfm:Radiohead::Reckoner", KindLastFMTrack, "Radiohead", "Reckoner"},
		{"lastfm:AC/DC::Thunderstruck", KindLastFMTrack, "AC/DC", "Thunderstruck"},
		{"lastfm:Björk", KindLastFMArtist, "Björk", ""},
	}

	for _, tt := range tests {
		id, err := ParseSourceID(tt.raw)
		if err != nil {
			t.Errorf("ParseSourceID(%q) returned error: %v", tt.raw, err)
			continue
		}
		if id.Kind != tt.kind || id.Value != tt.value || id.Track != tt.track {
			t.Errorf("ParseSourceID(%q) = %+v, want kind=%s value=%q track=%q", tt.raw, id, tt.kind, tt.value, tt.track)
		}
	}
}

func TestParseSourceID_Malformed(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"not a video",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/playlist?list=PL123",
		"lastfm:",
		"lastfm:::Track",
		"lastfm:Artist::",
	}

	for _, raw := range bad {
		if _, err := ParseSourceID(raw); !errors.Is(err, ErrMalformedID) {
			t.Errorf("ParseSourceID(%q) error = %v, want ErrMalformedID", raw, err)
		}
	}
}

func TestSourceID_StringRoundTrip(t *testing.T) {
	for _, raw := range []string{"dQw4w9WgXcQ", "lastfm:Radiohead::Reckoner", "lastfm:Radiohead"} {
		id, err := ParseSourceID(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if id.String() != raw {
			t.Errorf("String() = %q, want %q", id.String(), raw)
		}
	}
}

type stubLookup struct {
	name string
}

func (s stubLookup) FetchMetrics(_ context.Context, id SourceID) (Record, error) {
	return Record{Identifier: id.String(), Artist: s.name}, nil
}

func (s stubLookup) FetchRelated(_ context.Context, _ SourceID, _ []string, _ int) ([]Record, error) {
	return []Record{{Artist: s.name}}, nil
}

func TestRouter(t *testing.T) {
	r := &Router{YouTube: stubLookup{name: "yt"}}
	ctx := context.Background()

	rec, err := r.FetchMetrics(ctx, SourceID{Kind: KindYouTubeVideo, Value: "dQw4w9WgXcQ"})
	if err != nil || rec.Artist != "yt" {
		t.Errorf("Expected YouTube backend, got %+v, %v", rec, err)
	}

	related, err := r.FetchRelated(ctx, SourceID{Kind: KindYouTubeChannel, Value: "UC"}, nil, 5)
	if err != nil || len(related) != 1 {
		t.Errorf("Expected related from YouTube backend, got %v, %v", related, err)
	}

	_, err = r.FetchMetrics(ctx, SourceID{Kind: KindLastFMTrack, Value: "a", Track: "b"})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported without a Last.fm backend, got %v", err)
	}
}
