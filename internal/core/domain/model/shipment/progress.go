package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ProgressStatus is the handling stage recorded by a progress entry.
type ProgressStatus int

const (
	ProgressUnknown ProgressStatus = iota
	ProgressPacking
	ProgressPickedUp
	ProgressInTransit
)

var (
	ErrProgressStepIsNotConstructed  = errors.New("ProgressStep must be created via NewProgressStep constructor")
	ErrProgressEntryIsNotConstructed = errors.New("ProgressEntry must be created via NewProgressEntry constructor")
)

func getProgressStatusStrings() map[ProgressStatus]string {
	return map[ProgressStatus]string{
		ProgressUnknown:   "unknown",
		ProgressPacking:   "packing",
		ProgressPickedUp:  "picked_up",
		ProgressInTransit: "in_transit",
	}
}

// ParseProgressStatus accepts both the underscore names and the hyphenated
// names written by older clients ("picked-up", "in-transit").
func ParseProgressStatus(s string) (ProgressStatus, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for status, name := range getProgressStatusStrings() {
		if status != ProgressUnknown && name == normalized {
			return status, nil
		}
	}

	return ProgressUnknown, errs.NewValueIsInvalidErrorWithCause(
		"progress status",
		fmt.Errorf("%q is not one of packing, picked_up, in_transit", s),
	)
}

// Validate checks that the progress status is a known non-zero value.
func (p ProgressStatus) Validate() error {
	if _, ok := getProgressStatusStrings()[p]; !ok || p == ProgressUnknown {
		return errs.NewValueIsInvalidErrorWithCause("progress status", fmt.Errorf("%d is not a valid progress status", p))
	}
	return nil
}

func (p ProgressStatus) String() string {
	if str, ok := getProgressStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ProgressStep is what a caller reports: a handling stage and a free-text
// location such as "Lagos Hub". The timestamp is assigned by the store.
type ProgressStep struct { //nolint:recvcheck //using for validation
	status   ProgressStatus
	location string

	guard guard.ConstructorGuard
}

// NewProgressStep validates the status and requires a non-blank location.
func NewProgressStep(status ProgressStatus, location string) (ProgressStep, error) {
	step := ProgressStep{guard: guard.NewConstructorGuard()}

	if err := errors.Join(step.setStatus(status), step.setLocation(location)); err != nil {
		return ProgressStep{}, err
	}

	return step, nil
}

func (s ProgressStep) Validate() error {
	return s.guard.Validate(ErrProgressStepIsNotConstructed)
}

func (s ProgressStep) Status() ProgressStatus {
	return s.status
}

func (s ProgressStep) Location() string {
	return s.location
}

// At stamps the step with the time it was recorded.
func (s ProgressStep) At(recordedAt time.Time) (ProgressEntry, error) {
	if err := s.Validate(); err != nil {
		return ProgressEntry{}, err
	}
	return NewProgressEntry(s.status, s.location, recordedAt)
}

func (s *ProgressStep) setStatus(status ProgressStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *ProgressStep) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errs.NewValueIsRequiredError("progress location")
	}
	s.location = location
	return nil
}

// ProgressEntry is one immutable element of a shipment's progress history.
type ProgressEntry struct {
	status     ProgressStatus
	location   string
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewProgressEntry builds an entry; it is also used by storage adapters to
// restore persisted history.
func NewProgressEntry(status ProgressStatus, location string, recordedAt time.Time) (ProgressEntry, error) {
	step, err := NewProgressStep(status, location)
	if err != nil {
		return ProgressEntry{}, err
	}
	if recordedAt.IsZero() {
		return ProgressEntry{}, errs.NewValueIsRequiredError("progress time")
	}

	return ProgressEntry{
		status:     step.status,
		location:   step.location,
		recordedAt: recordedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e ProgressEntry) Validate() error {
	return e.guard.Validate(ErrProgressEntryIsNotConstructed)
}

func (e ProgressEntry) Status() ProgressStatus {
	return e.status
}

func (e ProgressEntry) Location() string {
	return e.location
}

func (e ProgressEntry) RecordedAt() time.Time {
	return e.recordedAt
}
