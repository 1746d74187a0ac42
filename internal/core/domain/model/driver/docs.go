// Package driver provides the Driver aggregate.
//
// Drivers are the store's own delivery fleet. Admins register them and assign them to
// deliveries; drivers report their position while on shift. The driver's capacity and
// last position feed the dispatcher that suggests a driver when an admin assigns a
// delivery without naming one.
package driver
