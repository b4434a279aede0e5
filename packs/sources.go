package packs

import (
	"context"
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"musiclegends/metrics"
)

// SourceManager builds the candidate pools secondary cards are drawn from.
// Lookup failures are logged and returned as empty pools.
type SourceManager struct {
	lookup  metrics.Lookup
	logger  *zap.Logger
	buckets int
}

func NewSourceManager(lookup metrics.Lookup, logger *zap.Logger, buckets int) *SourceManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SourceManager{
		lookup:  lookup,
		logger:  logger,
		buckets: max(buckets, 1),
	}
}

// ArtistTopVideos returns the channel's most viewed tracks, excluding
// excludeID, strongest first.
func (s *SourceManager) ArtistTopVideos(ctx context.Context, channel, excludeID string, maxResults int) []metrics.Record {
	if channel == "" || maxResults <= 0 {
		return nil
	}
	id, err := metrics.ParseSourceID(channel)
	if err != nil {
		s.logger.Warn("unusable channel key", zap.String("channel", channel), zap.Error(err))
		return nil
	}

	records, err := s.lookup.FetchRelated(ctx, id, []string{excludeID}, maxResults)
	if err != nil {
		s.logger.Warn("artist pool fetch failed", zap.String("channel", channel), zap.Error(err))
		return nil
	}

	records = withoutID(records, excludeID)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Views > records[j].Views
	})
	if len(records) > maxResults {
		records = records[:maxResults]
	}
	return records
}

// RelatedVideos fetches twice maxResults neighbouring tracks and samples
// them evenly across view-count bands so the pool is not only viral hits.
func (s *SourceManager) RelatedVideos(ctx context.Context, rng *rand.Rand, id metrics.SourceID, maxResults int) []metrics.Record {
	if maxResults <= 0 {
		return nil
	}
	records, err := s.lookup.FetchRelated(ctx, id, []string{id.String()}, maxResults*2)
	if err != nil {
		s.logger.Warn("related pool fetch failed", zap.String("source", id.String()), zap.Error(err))
		return nil
	}
	records = withoutID(records, id.String())
	return filterForBalance(rng, records, maxResults, s.buckets)
}

// filterForBalance sorts records by views, splits them into buckets of
// near-equal size and draws round-robin from each bucket until maxResults
// records are picked or the candidates run out.
func filterForBalance(rng *rand.Rand, records []metrics.Record, maxResults, buckets int) []metrics.Record {
	if len(records) <= maxResults {
		return records
	}

	sorted := make([]metrics.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Views < sorted[j].Views
	})

	buckets = min(buckets, len(sorted))
	bands := make([][]metrics.Record, buckets)
	for i := range bands {
		lo := i * len(sorted) / buckets
		hi := (i + 1) * len(sorted) / buckets
		band := sorted[lo:hi]
		rng.Shuffle(len(band), func(a, b int) {
			band[a], band[b] = band[b], band[a]
		})
		bands[i] = band
	}

	picked := make([]metrics.Record, 0, maxResults)
	for round := 0; len(picked) < maxResults; round++ {
		progressed := false
		for _, band := range bands {
			if round < len(band) && len(picked) < maxResults {
				picked = append(picked, band[round])
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return picked
}

func withoutID(records []metrics.Record, id string) []metrics.Record {
	out := make([]metrics.Record, 0, len(records))
	for _, r := range records {
		if r.Identifier != id {
			out = append(out, r)
		}
	}
	return out
}
