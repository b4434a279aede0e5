package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"musiclegends/config"
	"musiclegends/metrics"
)

type SpotifyClient struct {
	Client *spotify.Client
}

type ClientOptions struct {
	ClientID     string
	ClientSecret string
	// TokenURL and BaseURL default to the public Spotify endpoints.
	TokenURL string
	BaseURL  string
}

// NewClient checks the credentials with one token request and returns a
// client whose token source renews the client-credentials token as it
// expires.
func NewClient(ctx context.Context, opts ClientOptions) (*SpotifyClient, error) {
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyauth.TokenURL
	}
	creds := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}
	if _, err := creds.Token(ctx); err != nil {
		return nil, fmt.Errorf("spotify token: %w", err)
	}

	var clientOpts []spotify.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(opts.BaseURL))
	}
	return &SpotifyClient{Client: spotify.New(creds.Client(ctx), clientOpts...)}, nil
}

// ProvideSpotify authenticates with client credentials. It returns a client
// with a nil Client when credentials are missing or rejected.
func ProvideSpotify(cfg config.Config, logger *zap.Logger) *SpotifyClient {
	if cfg.SpotifyID == "" || cfg.SpotifySecret == "" {
		logger.Info("Spotify genre lookups disabled: no credentials")
		return &SpotifyClient{}
	}

	client, err := NewClient(context.Background(), ClientOptions{
		ClientID:     cfg.SpotifyID,
		ClientSecret: cfg.SpotifySecret,
	})
	if err != nil {
		logger.Warn("Spotify token request failed, genre lookups disabled", zap.Error(err))
		return &SpotifyClient{}
	}
	return client
}

var Options = ProvideSpotify

// ArtistGenres returns the genres Spotify lists for the best match on
// name, or nil when the client is disabled or nothing matches.
func (s *SpotifyClient) ArtistGenres(ctx context.Context, name string) ([]string, error) {
	if s == nil || s.Client == nil || strings.TrimSpace(name) == "" {
		return nil, nil
	}
	results, err := s.Client.Search(ctx, "artist:"+metrics.LeadArtist(name), spotify.SearchTypeArtist, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("spotify artist search %q: %w", name, err)
	}
	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		return nil, nil
	}
	return results.Artists.Artists[0].Genres, nil
}
