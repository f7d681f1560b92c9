// Package commands contains business operations that modify shipment state.
// Every command follows the same pattern: a guarded command value built by a
// NewXCommand constructor, and a handler whose Handle validates the command
// and applies it through the shipment store.
package commands

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

const (
	// MaxCreateAttempts bounds how often creation is retried after a tracking id collision.
	MaxCreateAttempts = 5

	// MaxStatusAttempts bounds how often a status change is retried after losing a race.
	MaxStatusAttempts = 5

	publishTimeout         = 5 * time.Second
	maxPendingPublications = 256
)

type (
	// OwnerValidator confirms that a shipment's owner and enterprise exist.
	OwnerValidator interface {
		ValidateOwners(ctx context.Context, ownerID, enterpriseID kernel.UUID) error
	}

	// TrackingIDGenerator draws candidate tracking identifiers.
	TrackingIDGenerator interface {
		Generate(length int) (string, error)
	}
)

// changeNotifier publishes shipment changes after they were stored. Publication
// runs in the background so a slow broker never holds up the mutation; each
// event gets its own timeout and outlives the request context. When
// maxPendingPublications events are already in flight, new ones are dropped
// and logged. A nil publisher disables publication.
type changeNotifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
	pending   chan struct{}
}

func newChangeNotifier(publisher ports.EventPublisher, logger *slog.Logger, component string) changeNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return changeNotifier{
		publisher: publisher,
		logger:    logger.With("component", component),
		pending:   make(chan struct{}, maxPendingPublications),
	}
}

func (n changeNotifier) notify(ctx context.Context, kind shipment.ChangeKind, s *shipment.Shipment) {
	if n.publisher == nil {
		return
	}

	event := shipment.NewChangedEvent(kind, s)
	select {
	case n.pending <- struct{}{}:
	default:
		n.logger.WarnContext(ctx, "dropping shipment change, too many publications in flight",
			"kind", string(kind),
			"shipment_id", event.ShipmentID,
		)
		return
	}

	go func() {
		defer func() { <-n.pending }()

		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := n.publisher.Publish(publishCtx, event); err != nil {
			n.logger.WarnContext(publishCtx, "failed to publish shipment change",
				"kind", string(kind),
				"shipment_id", event.ShipmentID,
				"error", err,
			)
		}
	}()
}
