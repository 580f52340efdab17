package transaction

import (
	"context"

	"github.com/bizcore/backend/internal/domain/shared"
)

// EventSource is an aggregate holding events queued during a unit of work
type EventSource interface {
	PullDomainEvents() []shared.DomainEvent
}

// PublishEvents drains the queued events of each source and hands them to
// publisher. Call it after commit. Publishing is best effort: handler errors
// are reported by the bus and never fail the operation.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, sources ...EventSource) {
	var events []shared.DomainEvent
	for _, src := range sources {
		if src == nil {
			continue
		}
		events = append(events, src.PullDomainEvents()...)
	}
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
