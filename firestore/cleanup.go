package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// AllCollections returns the collections subject to TTL cleanup.
func AllCollections() []string {
	return []string{PacksCollection}
}

// CleanupOldDocuments deletes documents whose createdAt is older than maxAge
// from each collection. A failing collection does not stop the others; all
// failures are returned together.
func CleanupOldDocuments(ctx context.Context, client *firestore.Client, collections []string, maxAge time.Duration, logger *zap.Logger) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	totalDeleted := 0
	var errs error

	for _, collName := range collections {
		deleted, err := cleanupCollection(ctx, client.Collection(collName), cutoff, logger)
		totalDeleted += deleted
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("cleanup %s: %w", collName, err))
		}
	}

	logger.Info("Cleanup complete",
		zap.Int("deleted", totalDeleted),
		zap.Time("cutoff", cutoff),
		zap.Int("failedCollections", len(multierr.Errors(errs))))
	return totalDeleted, errs
}

func cleanupCollection(ctx context.Context, col *firestore.CollectionRef, cutoff time.Time, logger *zap.Logger) (int, error) {
	iter := col.Where("createdAt", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	deleted := 0
	var errs error
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, multierr.Append(errs, err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", doc.Ref.ID, err))
			continue
		}
		logger.Debug("Deleted old document", zap.String("collection", col.ID), zap.String("id", doc.Ref.ID))
		deleted++
	}
	return deleted, errs
}

// RunCleanup cleans every known collection with the given TTL.
func RunCleanup(ctx context.Context, client *firestore.Client, ttl time.Duration, logger *zap.Logger) (int, error) {
	return CleanupOldDocuments(ctx, client, AllCollections(), ttl, logger)
}
