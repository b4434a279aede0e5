// Package metrics defines the popularity record the card pipeline consumes
// and the lookup contract external integrations implement.
package metrics

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the lookup had no data for the identifier.
	ErrNotFound = errors.New("metrics not found")
	// ErrMalformedID means the identifier could not be parsed.
	ErrMalformedID = errors.New("malformed source identifier")
	// ErrUnsupported means no configured backend serves the identifier kind.
	ErrUnsupported = errors.New("unsupported source identifier")
)

// Record is the raw popularity data for one track. Channel is an opaque key
// the same backend accepts in FetchRelated to list the artist's other tracks.
type Record struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Channel    string `json:"channel,omitempty"`
	Views      int64  `json:"views"`
	Likes      int64  `json:"likes"`
}

// Lookup fetches records from an external popularity source.
type Lookup interface {
	// FetchMetrics returns the record for a single track, or ErrNotFound.
	FetchMetrics(ctx context.Context, id SourceID) (Record, error)
	// FetchRelated lists up to maxResults records related to id. For a
	// channel or artist id these are that artist's tracks; for a track id
	// they are tracks in the same neighbourhood.
	FetchRelated(ctx context.Context, id SourceID, excludeIDs []string, maxResults int) ([]Record, error)
}
