// Package memory provides process-local implementations of the core ports.
// They back the "memory" storage driver used for local runs and unit tests.
// Data is lost when the process exits.
package memory
