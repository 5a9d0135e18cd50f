package repository

import (
	"context"

	"talkmap/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// firestore rejects batches above 500 writes
const maxBatchWrites = 500

// SeedFirestore writes events under their own ids, overwriting existing
// documents with the same id.
func SeedFirestore(ctx context.Context, client *firestore.Client, events []domain.Event) error {
	col := client.Collection(CollectionEvents)
	for start := 0; start < len(events); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(events) {
			end = len(events)
		}
		batch := client.Batch()
		for _, e := range events[start:end] {
			if e.ID == "" {
				return errors.New("SeedFirestore: seed event without id")
			}
			batch.Set(col.Doc(e.ID), e)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return &domain.StoreError{Op: "seed", Err: errors.Wrap(err, "SeedFirestore: batch commit failed")}
		}
	}
	return nil
}
