package commands

import (
	"errors"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrMarkOverdueShipmentsCommandIsNotConstructed = errors.New(
		"MarkOverdueShipmentsCommand must be created via NewMarkOverdueShipmentsCommand constructor",
	)
)

// MarkOverdueShipmentsCommand triggers the sweep that marks late shipments as delayed.
//
// Example:
//
//	cmd, _ := NewMarkOverdueShipmentsCommand(time.Now())
//	marked, err := handler.Handle(ctx, cmd)
//	log.Printf("%d shipments are now delayed", marked)
type MarkOverdueShipmentsCommand struct {
	today time.Time

	guard guard.ConstructorGuard
}

// NewMarkOverdueShipmentsCommand creates the sweep command for the calendar day of now.
func NewMarkOverdueShipmentsCommand(now time.Time) (MarkOverdueShipmentsCommand, error) {
	if now.IsZero() {
		return MarkOverdueShipmentsCommand{}, errs.NewValueIsRequiredError("now")
	}

	y, m, d := now.Date()
	return MarkOverdueShipmentsCommand{
		today: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c *MarkOverdueShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverdueShipmentsCommandIsNotConstructed)
}

// Today returns the start of the day the sweep runs for.
func (c *MarkOverdueShipmentsCommand) Today() time.Time {
	return c.today
}
