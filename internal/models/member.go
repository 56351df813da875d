package models

// Member is a person taking part in one or more groups.
// Members are immutable once created.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string

	// CreatedAt is the Unix timestamp when the member was created.
	CreatedAt int64
}
