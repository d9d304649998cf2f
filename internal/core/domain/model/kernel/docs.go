// Package kernel holds the shared value objects of the lastmile domain:
//   - UUID: identifier of every aggregate and entity
//   - Coordinates: a validated WGS84 point with great-circle distance
//
// Both are immutable and safe for concurrent use. Zero values are invalid and
// fail Validate.
package kernel
