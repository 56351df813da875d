package models

// GroupLedger is a consistent snapshot of everything needed to compute a
// group's balances. Stores build it from a single read transaction.
type GroupLedger struct {
	Group       *Group
	Expenses    []*Expense
	Settlements []*Settlement
}
