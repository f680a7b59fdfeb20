// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - GeoPoint: a validated latitude/longitude pair with great-circle distance
//
// Both types are immutable and their zero values are invalid; they must be
// created through their constructors so that every aggregate holding them can
// rely on Validate.
package kernel
