package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"musiclegends/metrics"
	"musiclegends/scrapers"
)

// trendingPool is how many chart entries a trending hero is drawn from.
const trendingPool = 10

// HandleTrending scrapes the chart, picks one of the top entries at random
// and generates a pack with it as the hero.
func (h *PackHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	songs, err := h.chart()
	if err != nil {
		h.logger.Error("Chart scrape failed", zap.Error(err))
		http.Error(w, "Failed to scrape chart: "+err.Error(), http.StatusBadGateway)
		return
	}
	if len(songs) == 0 {
		http.Error(w, "Chart is empty", http.StatusBadGateway)
		return
	}

	pool := songs[:min(len(songs), trendingPool)]
	song := pool[h.intN(len(pool))]

	hero, err := h.resolveHero(r.Context(), song)
	if err != nil {
		h.logger.Warn("No video for trending song", zap.String("artist", song.Artist), zap.String("title", song.Title), zap.Error(err))
		http.Error(w, "Failed to resolve trending song: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.logger.Info("Trending hero", zap.Int("rank", song.Rank), zap.String("hero", hero))
	h.generate(w, r, hero, &song)
}

func (h *PackHandler) resolveHero(ctx context.Context, song scrapers.Song) (string, error) {
	if h.search == nil {
		return metrics.LastFMTrackID(metrics.LeadArtist(song.Artist), song.Title), nil
	}
	return h.search.SearchVideo(ctx, searchQuery(song.Artist, song.Title))
}

func searchQuery(artist, title string) string {
	return metrics.FlattenCredit(artist) + " " + strings.TrimSpace(title)
}
