// Package models defines the core domain models for dinesplit.
//
// # Models
//
//   - Bill: a restaurant bill, the unit of persistence and of the split computation
//   - Item: a priced line on a bill, assignable to one or more diners
//   - Diner: a participant who may owe money for items
//   - DinerTotal, BillSummary: derived split results, recomputed on every read
//
// # Design Principles
//
// 1. **Values, not shared state**: bills are passed by value and transformed into
// new bills; Clone gives a deep copy so no two bills share slices or maps
// 2. **IDs for relationships**: items reference diners by ID, never by pointer
// 3. **One canonical assignment form**: AssignedTo is always a set of diner IDs;
// the older single-owner form is accepted on decode only
//
// # Invariants
//
// Every ID in an item's AssignedTo (and every key of CustomAmounts) names a
// diner on the same bill. Bill.Validate enforces this before a bill is stored.
package models
