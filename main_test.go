package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	fs "musiclegends/firestore"
	"musiclegends/handlers"
	"musiclegends/metrics"
	"musiclegends/packs"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, hero string) packs.Result {
	return packs.Result{HeroSource: hero, Error: "nope"}
}

type stubStore struct{}

func (stubStore) SavePack(context.Context, fs.PackDocument) error { return nil }

func (stubStore) RecentPacks(context.Context, int) ([]fs.PackDocument, error) { return nil, nil }

func TestNewRouter(t *testing.T) {
	h := handlers.NewPackHandler(stubGenerator{}, stubStore{}, nil, nil,
		func(context.Context) (int, error) { return 0, nil }, nil)
	r := NewRouter(h)

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/packs", "", http.StatusOK},
		{http.MethodPost, "/packs", `{"hero":"x"}`, http.StatusUnprocessableEntity},
		{http.MethodPost, "/cleanup", "", http.StatusOK},
		{http.MethodDelete, "/packs", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
		require.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestProvideLookup_NoBackends(t *testing.T) {
	lookup := ProvideLookup(nil, nil)
	_, err := lookup.FetchMetrics(context.Background(), metrics.SourceID{Kind: metrics.KindYouTubeVideo, Value: "dQw4w9WgXcQ"})
	require.ErrorIs(t, err, metrics.ErrUnsupported)
	_, err = lookup.FetchMetrics(context.Background(), metrics.SourceID{Kind: metrics.KindLastFMTrack, Value: "a", Track: "b"})
	require.ErrorIs(t, err, metrics.ErrUnsupported)
}
