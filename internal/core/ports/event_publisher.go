package ports

import (
	"context"

	"tracking/internal/core/domain/model/shipment"
)

// EventPublisher delivers shipment change notifications to interested consumers.
// Delivery is best effort; callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event shipment.ChangedEvent) error
}
