// Package kernel provides the value objects shared by every aggregate of the storefront core.
//
// The package includes:
//   - UUID: identifiers for orders, trackings, accounts, transactions and drivers
//   - Money: two-decimal signed amounts backed by shopspring/decimal
//   - GeoPoint: validated WGS84 coordinates with great-circle distance
//   - Actor: the authenticated principal and its role
//
// All of them are immutable and safe for concurrent use.
package kernel
