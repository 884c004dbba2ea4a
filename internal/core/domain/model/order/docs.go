// Package order provides domain entities and business logic for restring
// order management. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: the aggregate root owning identity, job details, and lifecycle
//   - Status: a state machine enforcing the single fulfillment path
//   - StatusHistoryEntry: the immutable, append-only transition log
//
// Key business rules:
//   - orders are created in Pending when payment is confirmed
//   - status follows pending -> picked_up -> in_progress -> quality_check ->
//     ready -> out_for_delivery -> delivered, one step at a time
//   - cancellation is allowed from any non-terminal status
//   - delivered and cancelled orders are immutable
//   - every committed transition appends exactly one history entry
package order
