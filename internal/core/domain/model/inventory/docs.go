// Package inventory models consumable string stock as an append-only movement
// ledger plus a cached per-SKU counter.
//
// The ledger is the correctness anchor: on-hand quantity for a SKU equals the
// sum of all movement deltas for that SKU. Debits past zero are recorded, not
// blocked; the resulting shortfall is surfaced to operators through the
// derived AlertLevel and the stock-check job rather than failing the order
// transition that caused it.
package inventory
