package metrics

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Kind identifies which backend and which entity a SourceID names.
type Kind int

const (
	KindYouTubeVideo Kind = iota + 1
	KindYouTubeChannel
	KindLastFMTrack
	KindLastFMArtist
)

func (k Kind) String() string {
	switch k {
	case KindYouTubeVideo:
		return "youtube_video"
	case KindYouTubeChannel:
		return "youtube_channel"
	case KindLastFMTrack:
		return "lastfm_track"
	case KindLastFMArtist:
		return "lastfm_artist"
	default:
		return "unknown"
	}
}

const (
	lastFMPrefix    = "lastfm:"
	lastFMSeparator = "::"
)

var (
	videoIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	channelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
)

// SourceID is a parsed track or artist identifier.
type SourceID struct {
	Kind Kind
	// Value is the video or channel id for YouTube kinds and the artist
	// name for Last.fm kinds.
	Value string
	// Track is the track name for KindLastFMTrack.
	Track string
}

// String renders the canonical identifier form accepted by ParseSourceID.
func (id SourceID) String() string {
	switch id.Kind {
	case KindLastFMTrack:
		return LastFMTrackID(id.Value, id.Track)
	case KindLastFMArtist:
		return LastFMArtistID(id.Value)
	default:
		return id.Value
	}
}

// LastFMTrackID builds the identifier for a Last.fm track.
func LastFMTrackID(artist, track string) string {
	return lastFMPrefix + artist + lastFMSeparator + track
}

// LastFMArtistID builds the identifier for a Last.fm artist.
func LastFMArtistID(artist string) string {
	return lastFMPrefix + artist
}

// ParseSourceID accepts bare YouTube video or channel ids, YouTube watch,
// shorts and youtu.be URLs, and lastfm:<artist>[::<track>] identifiers.
func ParseSourceID(raw string) (SourceID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return SourceID{}, fmt.Errorf("%w: empty identifier", ErrMalformedID)
	}

	if rest, ok := strings.CutPrefix(s, lastFMPrefix); ok {
		return parseLastFM(rest, raw)
	}
	if videoIDPattern.MatchString(s) {
		return SourceID{Kind: KindYouTubeVideo, Value: s}, nil
	}
	if channelIDPattern.MatchString(s) {
		return SourceID{Kind: KindYouTubeChannel, Value: s}, nil
	}
	if strings.Contains(s, "youtu") {
		return parseYouTubeURL(s, raw)
	}
	return SourceID{}, fmt.Errorf("%w: %q", ErrMalformedID, raw)
}

func parseLastFM(rest, raw string) (SourceID, error) {
	artist, track, hasTrack := strings.Cut(rest, lastFMSeparator)
	artist = strings.TrimSpace(artist)
	track = strings.TrimSpace(track)
	if artist == "" {
		return SourceID{}, fmt.Errorf("%w: missing artist in %q", ErrMalformedID, raw)
	}
	if !hasTrack {
		return SourceID{Kind: KindLastFMArtist, Value: artist}, nil
	}
	if track == "" {
		return SourceID{}, fmt.Errorf("%w: missing track in %q", ErrMalformedID, raw)
	}
	return SourceID{Kind: KindLastFMTrack, Value: artist, Track: track}, nil
}

func parseYouTubeURL(s, raw string) (SourceID, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return SourceID{}, fmt.Errorf("%w: %v", ErrMalformedID, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = path
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		switch {
		case path == "watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			candidate = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "channel/"):
			ch := strings.TrimPrefix(path, "channel/")
			if channelIDPattern.MatchString(ch) {
				return SourceID{Kind: KindYouTubeChannel, Value: ch}, nil
			}
		}
	}

	if videoIDPattern.MatchString(candidate) {
		return SourceID{Kind: KindYouTubeVideo, Value: candidate}, nil
	}
	return SourceID{}, fmt.Errorf("%w: no video id in %q", ErrMalformedID, raw)
}
