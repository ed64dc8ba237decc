package rider

import "time"

// Rider is a roster member. NationalID holds the normalized RUT and is the
// reconciliation key: at most one rider exists per identifier.
type Rider struct {
	ID         string
	NationalID string
	FullName   string
	Category   string
	Club       string
	City       string
	Email      string
	Phone      string
	Instagram  string
	BirthDate  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
