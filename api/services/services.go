// Package services holds the resource controllers. Each operation loads the
// whole collection, works on it in memory and, when it mutates, saves the
// whole collection back. Failures are returned to the caller untouched;
// turning them into HTTP responses is the job of the API error handler.
package services

import (
	"context"

	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	"github.com/rs/zerolog"
)

// Service contains all shared dependencies for the resource controllers.
type Service struct {
	Store     db.CollectionStore
	Publisher events.Notifier

	// Locks serialises each load-mutate-save. Nil leaves writers
	// unsynchronised, so concurrent writes to a collection race and the
	// last save wins.
	Locks *db.CollectionLocks
}

// notify publishes a change event. Publishing is best effort: the change is
// already saved, so a failure is only logged.
func (s *Service) notify(ctx context.Context, collection, recordID, action string) {
	if s.Publisher == nil {
		return
	}

	event := events.NewEventPayload(collection, recordID, action)
	if err := s.Publisher.Notify(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("collection", collection).
			Str("record_id", recordID).
			Str("action", action).
			Msg("Failed to publish change event")
	}
}
