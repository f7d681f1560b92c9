// Package services provides domain services of the tracking system: logic
// that does not belong to a single Shipment aggregate.
//
// The package includes:
//   - IdentifierGenerator: draws alphanumeric tracking identifiers from an entropy source
//   - ReferentialValidator: checks that a shipment's owner and enterprise exist
package services
