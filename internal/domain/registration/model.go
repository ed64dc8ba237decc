package registration

import "time"

const (
	StatusPending = "pending"
)

// Request is a self-service sign-up waiting for operator review.
type Request struct {
	ID            string
	NationalID    string
	FullName      string
	Email         string
	Phone         string
	Club          string
	City          string
	Category      string
	BirthDate     string
	Instagram     string
	TermsAccepted bool
	Status        string
	CreatedAt     time.Time
}
