package metrics

import (
	"context"
	"fmt"
)

// Router dispatches lookups to the backend that owns the identifier kind.
// A nil backend disables that kind.
type Router struct {
	YouTube Lookup
	LastFM  Lookup
}

func (r *Router) backend(id SourceID) (Lookup, error) {
	var l Lookup
	switch id.Kind {
	case KindYouTubeVideo, KindYouTubeChannel:
		l = r.YouTube
	case KindLastFMTrack, KindLastFMArtist:
		l = r.LastFM
	}
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, id.Kind)
	}
	return l, nil
}

func (r *Router) FetchMetrics(ctx context.Context, id SourceID) (Record, error) {
	l, err := r.backend(id)
	if err != nil {
		return Record{}, err
	}
	return l.FetchMetrics(ctx, id)
}

func (r *Router) FetchRelated(ctx context.Context, id SourceID, excludeIDs []string, maxResults int) ([]Record, error) {
	l, err := r.backend(id)
	if err != nil {
		return nil, err
	}
	return l.FetchRelated(ctx, id, excludeIDs, maxResults)
}
