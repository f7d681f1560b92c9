// Package shipment contains the Shipment aggregate and its value objects.
//
// A Shipment is issued once with a unique TrackingID, belongs to an owning
// account and a shipping enterprise, and then evolves only through:
//   - SetLocation: overwrite the last-known GeoPoint
//   - AppendProgress: add a ProgressEntry to the append-only history
//   - ChangeStatus: move along the Status state machine
//
// The aggregate validates each mutation in isolation. Serializing concurrent
// mutations of the same shipment is left to the storage adapters.
package shipment
