// Package services contains stateless domain services implementing the
// order-to-sub-order allocation engine:
//
//   - AllocationPlanner partitions an order's line items into warehouse groups
//     using the catalog and the stock index.
//   - PricingApportioner distributes order-level tax and delivery charges
//     across warehouse groups proportionally to their subtotals.
//   - StatusAggregator derives the parent order's status from the statuses of
//     its sub-orders.
//
// The services are pure with respect to persistence: they operate on domain
// values and the read-only ports, never on repositories. The application layer
// composes them inside a single unit of work.
package services
