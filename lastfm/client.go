// Package lastfm looks up track popularity through the Last.fm web API.
// Playcount stands in for views and listener count for likes.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"musiclegends/config"
	"musiclegends/metrics"
)

const (
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
	DefaultTimeout = 15 * time.Second

	// codeNotFound is Last.fm's "invalid parameters" error, returned for
	// unknown artists and tracks.
	codeNotFound = 6
)

// APIError is an error payload returned by Last.fm.
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm error %d: %s", e.Code, e.Message)
}

// Is lets errors.Is match unknown-entity errors against metrics.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == metrics.ErrNotFound && e.Code == codeNotFound
}

type ClientOptions struct {
	APIKey     string
	BaseURL    string
	RateLimit  rate.Limit
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client implements metrics.Lookup for lastfm: identifiers.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(5)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(opts.RateLimit, 1),
		logger:     opts.Logger,
	}
}

// ProvideLastFM returns nil when no API key is configured.
func ProvideLastFM(cfg config.Config, logger *zap.Logger) *Client {
	if cfg.LastFMAPIKey == "" {
		logger.Info("Last.fm lookups disabled: no API key")
		return nil
	}
	return NewClient(ClientOptions{
		APIKey:    cfg.LastFMAPIKey,
		RateLimit: rate.Limit(cfg.LookupRate),
		Logger:    logger.Named("lastfm"),
	})
}

var Options = ProvideLastFM

// count decodes Last.fm counters, which arrive as strings from most
// methods and as numbers from track.getSimilar.
type count int64

func (c *count) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("lastfm count %q: %w", s, err)
	}
	*c = count(n)
	return nil
}

type artistRef struct {
	Name string `json:"name"`
}

type track struct {
	Name      string    `json:"name"`
	Artist    artistRef `json:"artist"`
	Playcount count     `json:"playcount"`
	Listeners count     `json:"listeners"`
}

func (t track) record() metrics.Record {
	return metrics.Record{
		Identifier: metrics.LastFMTrackID(t.Artist.Name, t.Name),
		Title:      t.Name,
		Artist:     t.Artist.Name,
		Channel:    metrics.LastFMArtistID(t.Artist.Name),
		Views:      int64(t.Playcount),
		Likes:      int64(t.Listeners),
	}
}

func (c *Client) FetchMetrics(ctx context.Context, id metrics.SourceID) (metrics.Record, error) {
	if id.Kind != metrics.KindLastFMTrack {
		return metrics.Record{}, fmt.Errorf("%w: %s is not a track", metrics.ErrUnsupported, id.Kind)
	}
	t, err := c.trackInfo(ctx, id.Value, id.Track)
	if err != nil {
		return metrics.Record{}, err
	}
	return t.record(), nil
}

// FetchRelated returns an artist's top tracks for artist ids and similar
// tracks for track ids.
func (c *Client) FetchRelated(ctx context.Context, id metrics.SourceID, excludeIDs []string, maxResults int) ([]metrics.Record, error) {
	exclude := make(map[string]bool, len(excludeIDs))
	for _, e := range excludeIDs {
		exclude[e] = true
	}

	var (
		tracks []track
		err    error
	)
	switch id.Kind {
	case metrics.KindLastFMArtist:
		tracks, err = c.topTracks(ctx, id.Value, maxResults+len(excludeIDs))
	case metrics.KindLastFMTrack:
		tracks, err = c.similarTracks(ctx, id.Value, id.Track, maxResults+len(excludeIDs))
	default:
		return nil, fmt.Errorf("%w: %s", metrics.ErrUnsupported, id.Kind)
	}
	if err != nil {
		return nil, err
	}

	records := make([]metrics.Record, 0, min(len(tracks), maxResults))
	for _, t := range tracks {
		if len(records) >= maxResults {
			break
		}
		r := t.record()
		if exclude[r.Identifier] {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (c *Client) trackInfo(ctx context.Context, artist, name string) (track, error) {
	var resp struct {
		Track track `json:"track"`
	}
	err := c.call(ctx, "track.getInfo", url.Values{
		"artist":      {artist},
		"track":       {name},
		"autocorrect": {"1"},
	}, &resp)
	if err != nil {
		return track{}, fmt.Errorf("track.getInfo %s - %s: %w", artist, name, err)
	}
	if resp.Track.Name == "" {
		return track{}, fmt.Errorf("track.getInfo %s - %s: %w", artist, name, metrics.ErrNotFound)
	}
	return resp.Track, nil
}

func (c *Client) topTracks(ctx context.Context, artist string, limit int) ([]track, error) {
	var resp struct {
		TopTracks struct {
			Track []track `json:"track"`
		} `json:"toptracks"`
	}
	err := c.call(ctx, "artist.getTopTracks", url.Values{
		"artist": {artist},
		"limit":  {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("artist.getTopTracks %s: %w", artist, err)
	}
	return resp.TopTracks.Track, nil
}

// similarTracks carries no listener counts, so each result is re-read with
// track.getInfo. Tracks whose details cannot be fetched are dropped.
func (c *Client) similarTracks(ctx context.Context, artist, name string, limit int) ([]track, error) {
	var resp struct {
		Similar struct {
			Track []track `json:"track"`
		} `json:"similartracks"`
	}
	err := c.call(ctx, "track.getSimilar", url.Values{
		"artist": {artist},
		"track":  {name},
		"limit":  {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("track.getSimilar %s - %s: %w", artist, name, err)
	}

	tracks := make([]track, 0, len(resp.Similar.Track))
	for _, s := range resp.Similar.Track {
		full, err := c.trackInfo(ctx, s.Artist.Name, s.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Dropping similar track", zap.String("artist", s.Artist.Name), zap.String("track", s.Name), zap.Error(err))
			continue
		}
		tracks = append(tracks, full)
	}
	return tracks, nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("method", method)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "MusicLegends/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	// Last.fm reports most failures in the body, sometimes with a 200.
	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != 0 {
		return &apiErr
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", method, err)
	}
	return nil
}

var _ metrics.Lookup = (*Client)(nil)
