package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DonationEventSubmitted = "submitted"
	DonationEventConfirmed = "confirmed"
	DonationEventRejected  = "rejected"
)

// DonationEvent is published whenever a donation is received or changes status.
// It never carries the donor name.
type DonationEvent struct {
	Type        string          `json:"type"`
	DonationID  uuid.UUID       `json:"donation_id"`
	Amount      decimal.Decimal `json:"amount"`
	ActivityID  *uuid.UUID      `json:"activity_id,omitempty"`
	IsPublic    bool            `json:"is_public"`
	IsAnonymous bool            `json:"is_anonymous"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewDonationEvent builds an event for the given donation
func NewDonationEvent(eventType string, donation *Donation, at time.Time) *DonationEvent {
	return &DonationEvent{
		Type:        eventType,
		DonationID:  donation.ID,
		Amount:      donation.Amount,
		ActivityID:  donation.ActivityID,
		IsPublic:    donation.IsPublic,
		IsAnonymous: donation.IsAnonymous,
		OccurredAt:  at.UTC(),
	}
}

// RoutingKey returns the broker routing key for the event
func (e *DonationEvent) RoutingKey() string {
	return "donation." + e.Type
}

// ToJSON converts the event to JSON bytes
func (e *DonationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DonationEventFromJSON creates an event from JSON bytes
func DonationEventFromJSON(data []byte) (*DonationEvent, error) {
	var event DonationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
