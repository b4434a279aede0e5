// Package youtube looks up video popularity through the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"musiclegends/config"
	"musiclegends/metrics"
	"musiclegends/spotify"
)

const (
	// musicCategory is the YouTube video category id for Music.
	musicCategory = "10"
	// maxPage is the largest page search.list and videos.list accept.
	maxPage = 50

	topicSuffix = " - Topic"
)

// GenreResolver maps an artist name to genre labels.
type GenreResolver interface {
	ArtistGenres(ctx context.Context, name string) ([]string, error)
}

type ClientOptions struct {
	APIKey string
	// Endpoint overrides the API base URL.
	Endpoint  string
	RateLimit rate.Limit
	Genres    GenreResolver
	Logger    *zap.Logger
}

// Client implements metrics.Lookup for YouTube videos and channels.
type Client struct {
	svc     *yt.Service
	genres  GenreResolver
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}

	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(5)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		svc:     svc,
		genres:  opts.Genres,
		limiter: rate.NewLimiter(opts.RateLimit, 1),
		logger:  opts.Logger,
	}, nil
}

// ProvideYouTube returns nil when no API key is configured.
func ProvideYouTube(cfg config.Config, sp *spotify.SpotifyClient, logger *zap.Logger) (*Client, error) {
	if cfg.YouTubeAPIKey == "" {
		logger.Info("YouTube lookups disabled: no API key")
		return nil, nil
	}
	return NewClient(context.Background(), ClientOptions{
		APIKey:    cfg.YouTubeAPIKey,
		RateLimit: rate.Limit(cfg.LookupRate),
		Genres:    sp,
		Logger:    logger.Named("youtube"),
	})
}

var Options = ProvideYouTube

func (c *Client) FetchMetrics(ctx context.Context, id metrics.SourceID) (metrics.Record, error) {
	if id.Kind != metrics.KindYouTubeVideo {
		return metrics.Record{}, fmt.Errorf("%w: %s is not a video", metrics.ErrUnsupported, id.Kind)
	}
	records, err := c.videos(ctx, []string{id.Value})
	if err != nil {
		return metrics.Record{}, err
	}
	if len(records) == 0 {
		return metrics.Record{}, fmt.Errorf("video %s: %w", id.Value, metrics.ErrNotFound)
	}
	return records[0], nil
}

// FetchRelated lists a channel's most viewed videos for channel ids. For
// video ids it searches the Music category by the artist's genre.
func (c *Client) FetchRelated(ctx context.Context, id metrics.SourceID, excludeIDs []string, maxResults int) ([]metrics.Record, error) {
	if maxResults <= 0 {
		return nil, nil
	}
	page := int64(min(maxResults+len(excludeIDs), maxPage))

	var call *yt.SearchListCall
	switch id.Kind {
	case metrics.KindYouTubeChannel:
		call = c.svc.Search.List([]string{"id"}).
			ChannelId(id.Value).
			Type("video").
			Order("viewCount").
			MaxResults(page)
	case metrics.KindYouTubeVideo:
		q, err := c.relatedQuery(ctx, id)
		if err != nil {
			return nil, err
		}
		call = c.svc.Search.List([]string{"id"}).
			Q(q).
			Type("video").
			VideoCategoryId(musicCategory).
			MaxResults(page)
	default:
		return nil, fmt.Errorf("%w: %s", metrics.ErrUnsupported, id.Kind)
	}

	ids, err := c.search(ctx, call)
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]bool, len(excludeIDs)+1)
	for _, e := range excludeIDs {
		exclude[e] = true
	}
	if id.Kind == metrics.KindYouTubeVideo {
		exclude[id.Value] = true
	}

	keep := make([]string, 0, maxResults)
	for _, v := range ids {
		if len(keep) >= maxResults {
			break
		}
		if !exclude[v] {
			keep = append(keep, v)
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}
	return c.videos(ctx, keep)
}

// SearchVideo returns the id of the top Music category match for query.
func (c *Client) SearchVideo(ctx context.Context, query string) (string, error) {
	call := c.svc.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		VideoCategoryId(musicCategory).
		MaxResults(1)
	ids, err := c.search(ctx, call)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("search %q: %w", query, metrics.ErrNotFound)
	}
	return ids[0], nil
}

// relatedQuery builds the search text for a video's neighbourhood: the
// artist's first genre when one is known, otherwise the artist name.
func (c *Client) relatedQuery(ctx context.Context, id metrics.SourceID) (string, error) {
	rec, err := c.FetchMetrics(ctx, id)
	if err != nil {
		return "", err
	}
	if c.genres != nil {
		genres, err := c.genres.ArtistGenres(ctx, rec.Artist)
		if err != nil {
			c.logger.Warn("Genre lookup failed", zap.String("artist", rec.Artist), zap.Error(err))
		}
		if len(genres) > 0 {
			return genres[0] + " music", nil
		}
	}
	return rec.Artist, nil
}

func (c *Client) search(ctx context.Context, call *yt.SearchListCall) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search.list: %w", err)
	}
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, nil
}

func (c *Client) videos(ctx context.Context, ids []string) ([]metrics.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	records := make([]metrics.Record, 0, len(resp.Items))
	for _, v := range resp.Items {
		records = append(records, videoRecord(v))
	}
	return records, nil
}

func videoRecord(v *yt.Video) metrics.Record {
	r := metrics.Record{Identifier: v.Id}
	if v.Snippet != nil {
		r.Title = v.Snippet.Title
		r.Artist = strings.TrimSuffix(v.Snippet.ChannelTitle, topicSuffix)
		r.Channel = v.Snippet.ChannelId
	}
	if v.Statistics != nil {
		r.Views = int64(v.Statistics.ViewCount)
		r.Likes = int64(v.Statistics.LikeCount)
	}
	return r
}

var _ metrics.Lookup = (*Client)(nil)
