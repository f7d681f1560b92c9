package memory

import (
	"context"
	"sync"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

var (
	_ ports.AccountDirectory    = (*Directory)(nil)
	_ ports.EnterpriseDirectory = (*EnterpriseDirectory)(nil)
)

// Directory is an account directory backed by a set of known ids.
type Directory struct {
	mu    sync.RWMutex
	known map[kernel.UUID]struct{}
}

// NewDirectory creates an account directory that knows the given ids.
func NewDirectory(ids ...kernel.UUID) *Directory {
	d := &Directory{known: make(map[kernel.UUID]struct{}, len(ids))}
	for _, id := range ids {
		d.known[id] = struct{}{}
	}
	return d
}

// Register adds an account.
func (d *Directory) Register(id kernel.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.known[id] = struct{}{}
}

func (d *Directory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.known[id]
	return ok, nil
}

// EnterpriseDirectory keeps enterprise profiles in memory.
type EnterpriseDirectory struct {
	mu       sync.RWMutex
	profiles map[kernel.UUID]ports.EnterpriseProfile
}

// NewEnterpriseDirectory creates a directory holding the given profiles.
func NewEnterpriseDirectory(profiles ...ports.EnterpriseProfile) *EnterpriseDirectory {
	d := &EnterpriseDirectory{profiles: make(map[kernel.UUID]ports.EnterpriseProfile, len(profiles))}
	for _, p := range profiles {
		d.profiles[p.ID] = p
	}
	return d
}

// Register adds or replaces a profile.
func (d *EnterpriseDirectory) Register(profile ports.EnterpriseProfile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles[profile.ID] = profile
}

func (d *EnterpriseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.profiles[id]
	return ok, nil
}

func (d *EnterpriseDirectory) Get(ctx context.Context, id kernel.UUID) (ports.EnterpriseProfile, error) {
	if err := ctx.Err(); err != nil {
		return ports.EnterpriseProfile{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[id]
	if !ok {
		return ports.EnterpriseProfile{}, errs.NewObjectNotFoundError("enterprise", id.String())
	}
	return p, nil
}
