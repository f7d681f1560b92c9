// Package kernel provides the shared domain primitives of the tracking system.
//
// The package includes:
//   - UUID: identifier value object for shipments, accounts and enterprises
//   - GeoPoint: a validated longitude/latitude pair describing a last-known position
//
// Both primitives are immutable, safe for concurrent use and invalid as zero
// values, so a forgotten constructor call is caught by Validate.
package kernel
