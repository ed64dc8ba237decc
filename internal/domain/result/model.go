package result

import "time"

// Result is one rider's finish at one event. CategoryPlayed records the
// category raced that day, which may differ from the rider's current
// category; ranking aggregation filters on both.
type Result struct {
	ID             string
	EventID        string
	RiderID        string
	CategoryPlayed string
	Position       int
	Points         int
	RaceTime       string
	AvgSpeed       *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
