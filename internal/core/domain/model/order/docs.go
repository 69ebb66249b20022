// Package order contains the parent Order aggregate of the fulfillment domain.
//
// An Order is a customer's complete purchase request. It is created once at
// checkout and is immutable afterwards except for its status, which is never
// set directly: it is derived from the statuses of the order's sub-orders by
// the status aggregator whenever a sub-order transitions.
//
// The aggregate enforces the pricing invariants of the domain:
//   - subtotal equals the sum of all item line totals
//   - total equals subtotal + tax + delivery charges - discount
//
// All monetary values use decimal arithmetic; items keep quantity, unit price
// and a derived line total.
package order
