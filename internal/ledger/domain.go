// Package ledger owns the guest-entry collection for a single event:
// sequential envelope numbering, persistence, and derived statistics.
package ledger

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no entry exists with the given id.
	ErrNotFound = errors.New("ledger: entry not found")
	// ErrClosed indicates the service has been closed.
	ErrClosed = errors.New("ledger: service closed")
)

// Entry is one recorded gift at the front desk.
type Entry struct {
	ID             string    `json:"id"`
	EnvelopeNumber int       `json:"envelopeNumber"`
	Name           string    `json:"name"`
	Amount         int64     `json:"amount"`
	MealTickets    int       `json:"mealTickets"`
	Message        string    `json:"message,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Draft carries the caller-supplied fields for a new entry. The service
// assigns ID, EnvelopeNumber and Timestamp itself.
type Draft struct {
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	MealTickets int    `json:"mealTickets"`
	Message     string `json:"message,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched; a non-nil
// pointer overwrites, so a pointer to "" clears the message on purpose.
// EnvelopeNumber is honored when set but its uniqueness stays the
// caller's problem; no UI path ever sets it.
type Patch struct {
	Name           *string `json:"name,omitempty"`
	Amount         *int64  `json:"amount,omitempty"`
	MealTickets    *int    `json:"mealTickets,omitempty"`
	Message        *string `json:"message,omitempty"`
	EnvelopeNumber *int    `json:"envelopeNumber,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Name == nil && p.Amount == nil && p.MealTickets == nil &&
		p.Message == nil && p.EnvelopeNumber == nil
}

func (p Patch) apply(e Entry) Entry {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.MealTickets != nil {
		e.MealTickets = *p.MealTickets
	}
	if p.Message != nil {
		e.Message = *p.Message
	}
	if p.EnvelopeNumber != nil {
		e.EnvelopeNumber = *p.EnvelopeNumber
	}
	return e
}

// Stats are derived from the current collection and never stored.
type Stats struct {
	TotalGuests      int   `json:"totalGuests"`
	TotalAmount      int64 `json:"totalAmount"`
	AverageAmount    int64 `json:"averageAmount"`
	TotalMealTickets int   `json:"totalMealTickets"`
}

// ComputeStats derives aggregate statistics from a set of entries.
func ComputeStats(entries []Entry) Stats {
	var s Stats
	s.TotalGuests = len(entries)
	for _, e := range entries {
		s.TotalAmount += e.Amount
		s.TotalMealTickets += e.MealTickets
	}
	if s.TotalGuests > 0 {
		// Round half away from zero, matching the reference behavior.
		s.AverageAmount = (s.TotalAmount + int64(s.TotalGuests)/2) / int64(s.TotalGuests)
	}
	return s
}

// NextEnvelopeNumber computes the number the next added entry would get.
func NextEnvelopeNumber(entries []Entry) int {
	max := 0
	for _, e := range entries {
		if e.EnvelopeNumber > max {
			max = e.EnvelopeNumber
		}
	}
	return max + 1
}
