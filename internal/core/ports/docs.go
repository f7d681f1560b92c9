// Package ports declares the interfaces the core needs from the outside world:
// shipment storage, the account and enterprise directories, asset URL
// resolution and change event publication. Adapters under internal/adapters/out
// implement them.
package ports
