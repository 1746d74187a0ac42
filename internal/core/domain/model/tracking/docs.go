// Package tracking provides the delivery Tracking aggregate: the driver-facing state machine
// that runs alongside an order from confirmation to the customer's door.
package tracking
