// Package binding is the only door from presentation code into the cart.
//
// A Provider owns the process's single Store and is passed down through a
// context.Context rather than a package variable. Presentation code asks the
// Provider for a Cart handle, whose reads come from the latest snapshot and
// whose writes dispatch actions; nothing outside the store mutates state.
//
// Derived values are memoised per snapshot pointer, so repeated reads between
// changes cost a pointer comparison. Subscriptions coalesce notifications into
// a one-slot channel: a slow reader may skip intermediate states but always
// observes the last one through Snapshot.
package binding
