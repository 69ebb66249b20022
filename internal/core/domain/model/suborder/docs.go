// Package suborder contains the SubOrder aggregate: a warehouse-scoped
// fulfillment unit derived from splitting a parent order.
//
// SubOrders are created exactly once per order, during the split, and are
// never re-split. Each carries its own copy of the allocated items, a
// proportional share of the parent's tax and delivery charges, and a
// finer-grained status lifecycle than the parent. Whenever a sub-order
// transitions, the parent order's status is re-derived from the full sibling
// set in the same transaction.
//
// A sub-order is destroyed only by cascade when its parent order is deleted.
package suborder
