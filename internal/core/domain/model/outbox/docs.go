// Package outbox provides the transactional outbox Message used to deliver notifications
// at least once and never before the state change they describe has been committed.
package outbox
