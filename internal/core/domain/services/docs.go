// Package services contains domain services that coordinate more than one aggregate.
//
// The package includes:
//   - DeliveryCoordinator: advances a delivery tracking and the order it belongs to as one step
//   - DriverDispatcher: suggests the nearest active driver with free capacity
package services
