// Package services provides domain services that operate across aggregates:
// predictive analytics over order history, scheduling advice against booked
// capacity, and notification dispatch with duplicate suppression.
//
// Analytics and scheduling are pure and read-only; they consume snapshots of
// transactional state and never mutate it. The notification dispatcher is the
// only service with side effects, and those are best-effort: a failed send
// never affects the order state machine.
package services
