package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	yt "google.golang.org/api/youtube/v3"

	"musiclegends/metrics"
)

type fakeGenres struct {
	genres []string
	err    error
	asked  []string
}

func (f *fakeGenres) ArtistGenres(_ context.Context, name string) ([]string, error) {
	f.asked = append(f.asked, name)
	return f.genres, f.err
}

type fakeAPI struct {
	mu      sync.Mutex
	videos  map[string]*yt.Video
	results []string
	queries []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()
	switch {
	case strings.HasSuffix(r.URL.Path, "/videos"):
		resp := yt.VideoListResponse{}
		for _, param := range q["id"] {
			for _, id := range strings.Split(param, ",") {
				if v, ok := f.videos[id]; ok {
					resp.Items = append(resp.Items, v)
				}
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	case strings.HasSuffix(r.URL.Path, "/search"):
		f.queries = append(f.queries, q.Get("q")+"|"+q.Get("channelId")+"|"+q.Get("order")+"|"+q.Get("videoCategoryId"))
		resp := yt.SearchListResponse{}
		for _, id := range f.results {
			resp.Items = append(resp.Items, &yt.SearchResult{Id: &yt.ResourceId{Kind: "youtube#video", VideoId: id}})
		}
		_ = json.NewEncoder(w).Encode(resp)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) seenQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func video(id, title, channelTitle, channelID string, views, likes uint64) *yt.Video {
	return &yt.Video{
		Id:         id,
		Snippet:    &yt.VideoSnippet{Title: title, ChannelTitle: channelTitle, ChannelId: channelID},
		Statistics: &yt.VideoStatistics{ViewCount: views, LikeCount: likes},
	}
}

func newTestClient(t *testing.T, api *fakeAPI, genres GenreResolver) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), ClientOptions{
		APIKey:    "test-key",
		Endpoint:  srv.URL + "/",
		RateLimit: rate.Inf,
		Genres:    genres,
	})
	require.NoError(t, err)
	return c
}

const (
	heroID    = "dQw4w9WgXcQ"
	channelID = "UCuAXFkgsw1L7xaCfnd5JJOw"
)

func TestVideoRecord(t *testing.T) {
	rec := videoRecord(video(heroID, "Never Gonna Give You Up", "Rick Astley - Topic", channelID, 1_500_000_000, 17_000_000))
	require.Equal(t, metrics.Record{
		Identifier: heroID,
		Title:      "Never Gonna Give You Up",
		Artist:     "Rick Astley",
		Channel:    channelID,
		Views:      1_500_000_000,
		Likes:      17_000_000,
	}, rec)

	// hidden like counts arrive as missing statistics fields
	bare := videoRecord(&yt.Video{Id: "x"})
	require.Equal(t, metrics.Record{Identifier: "x"}, bare)
}

func TestFetchMetrics(t *testing.T) {
	api := &fakeAPI{videos: map[string]*yt.Video{
		heroID: video(heroID, "Never Gonna Give You Up", "Rick Astley", channelID, 1000, 10),
	}}
	c := newTestClient(t, api, nil)

	rec, err := c.FetchMetrics(context.Background(), metrics.SourceID{Kind: metrics.KindYouTubeVideo, Value: heroID})
	require.NoError(t, err)
	require.Equal(t, int64(1000), rec.Views)
	require.Equal(t, channelID, rec.Channel)

	_, err = c.FetchMetrics(context.Background(), metrics.SourceID{Kind: metrics.KindYouTubeVideo, Value: "aaaaaaaaaaa"})
	require.True(t, errors.Is(err, metrics.ErrNotFound))

	_, err = c.FetchMetrics(context.Background(), metrics.SourceID{Kind: metrics.KindYouTubeChannel, Value: channelID})
	require.ErrorIs(t, err, metrics.ErrUnsupported)
}

func TestFetchRelated_Channel(t *testing.T) {
	api := &fakeAPI{
		videos: map[string]*yt.Video{
			"aaaaaaaaaaa": video("aaaaaaaaaaa", "A", "Rick Astley", channelID, 500, 5),
			"bbbbbbbbbbb": video("bbbbbbbbbbb", "B", "Rick Astley", channelID, 400, 4),
		},
		results: []string{heroID, "aaaaaaaaaaa", "bbbbbbbbbbb"},
	}
	c := newTestClient(t, api, nil)

	got, err := c.FetchRelated(context.Background(),
		metrics.SourceID{Kind: metrics.KindYouTubeChannel, Value: channelID}, []string{heroID}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "aaaaaaaaaaa", got[0].Identifier)
	require.Equal(t, []string{"|" + channelID + "|viewCount|"}, api.seenQueries())
}

func TestFetchRelated_VideoSearchesByGenre(t *testing.T) {
	api := &fakeAPI{
		videos: map[string]*yt.Video{
			heroID:        video(heroID, "Never Gonna Give You Up", "Rick Astley - Topic", channelID, 1000, 10),
			"ccccccccccc": video("ccccccccccc", "C", "Other", "UCother", 300, 3),
		},
		results: []string{heroID, "ccccccccccc"},
	}
	genres := &fakeGenres{genres: []string{"dance pop", "new wave"}}
	c := newTestClient(t, api, genres)

	got, err := c.FetchRelated(context.Background(),
		metrics.SourceID{Kind: metrics.KindYouTubeVideo, Value: heroID}, nil, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ccccccccccc", got[0].Identifier)
	require.Equal(t, []string{"Rick Astley"}, genres.asked)
	require.Equal(t, []string{"dance pop music|||10"}, api.seenQueries())
}

func TestFetchRelated_VideoFallsBackToArtist(t *testing.T) {
	api := &fakeAPI{
		videos: map[string]*yt.Video{
			heroID: video(heroID, "Never Gonna Give You Up", "Rick Astley", channelID, 1000, 10),
		},
	}
	c := newTestClient(t, api, &fakeGenres{err: errors.New("spotify down")})

	got, err := c.FetchRelated(context.Background(),
		metrics.SourceID{Kind: metrics.KindYouTubeVideo, Value: heroID}, nil, 5)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, []string{"Rick Astley|||10"}, api.seenQueries())
}

func TestSearchVideo(t *testing.T) {
	api := &fakeAPI{results: []string{heroID}}
	c := newTestClient(t, api, nil)

	id, err := c.SearchVideo(context.Background(), "Rick Astley Never Gonna Give You Up")
	require.NoError(t, err)
	require.Equal(t, heroID, id)

	api.mu.Lock()
	api.results = nil
	api.mu.Unlock()
	_, err = c.SearchVideo(context.Background(), "nothing")
	require.ErrorIs(t, err, metrics.ErrNotFound)
}
