// Package services provides domain services that coordinate business rules
// spanning more than one aggregate.
//
// The package includes:
//   - Geofence: checks that a hiding spot lies within the allowed radius of
//     the geocoded delivery address
//   - InventoryReservation: checks and deducts driver stock for the items of
//     a delivery
//
// Services are stateless apart from their configuration and never perform I/O;
// geocoding and persistence stay in the application layer.
package services
