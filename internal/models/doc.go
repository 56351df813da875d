// Package models defines the domain records shared by storage, the ledger and
// the RPC services.
//
// # Records
//
//   - Member: a person, identified by an opaque ID, with a display name
//   - Group: a set of members who share expenses ("event")
//   - Expense: an amount paid by one member and split evenly over participants
//   - Settlement: a payment between two members that has already happened
//   - SuggestedPayment: a calculated, not yet executed settlement
//   - GroupLedger: one consistent snapshot of a group's records
//
// Records reference each other by ID strings, never by pointer. Expenses and
// settlements are immutable once stored. Balances are not a record: they are
// derived from a GroupLedger on every query (see package calculator).
package models
