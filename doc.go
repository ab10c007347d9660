// Package robdd implements a shared, reduced, ordered binary decision
// diagram (ROBDD) with complemented edges. A single Manager owns a node
// table shared by every diagram built from it; Boolean functions are
// identified by Node handles, small signed integers whose sign records
// whether the handle is complemented.
//
// The manager hash-conses every node it builds so that two functions that
// denote the same Boolean formula, under the manager's current variable
// order, always share a single node. Ite and Apply each run their own
// memoized recursion with a computed cache of their own; the binary
// connectives (Apply and its wrappers And, Or, Imp, Equiv) do not go
// through Ite. Reference
// counts on externally held nodes protect them from the mark-sweep garbage
// collector, and dynamic reordering (adjacent swaps, driven by Rudell
// sifting) can be triggered automatically or on demand to keep the shared
// diagram small.
package robdd
