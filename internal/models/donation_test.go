package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestDonation_Validate(t *testing.T) {
	tests := []struct {
		name     string
		donation Donation
		wantErr  error
	}{
		{
			name:     "valid donation",
			donation: Donation{Amount: decimal.NewFromInt(500000), Name: strPtr("Budi")},
		},
		{
			name:     "valid anonymous donation without name",
			donation: Donation{Amount: decimal.NewFromInt(10000), IsAnonymous: true},
		},
		{
			name:     "zero amount",
			donation: Donation{Amount: decimal.Zero},
			wantErr:  ErrDonationAmountRequired,
		},
		{
			name:     "negative amount",
			donation: Donation{Amount: decimal.NewFromInt(-1)},
			wantErr:  ErrDonationNegativeAmount,
		},
		{
			name:     "name too long",
			donation: Donation{Amount: decimal.NewFromInt(1), Name: strPtr(strings.Repeat("a", 256))},
			wantErr:  ErrDonorNameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.donation.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDonation_StatusTransitions(t *testing.T) {
	adminID := uuid.New()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("pending to confirmed", func(t *testing.T) {
		d := Donation{Amount: decimal.NewFromInt(100)}
		assert.Equal(t, DonationStatusPending, d.Status())
		assert.True(t, d.IsPending())

		require.NoError(t, d.Confirm(adminID, now))
		assert.Equal(t, DonationStatusConfirmed, d.Status())
		assert.Equal(t, adminID, *d.ConfirmedBy)
		assert.Equal(t, now, *d.ConfirmedAt)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		d := Donation{Amount: decimal.NewFromInt(100)}
		require.NoError(t, d.Reject("  transfer not found ", now))
		assert.Equal(t, DonationStatusRejected, d.Status())
		assert.False(t, d.IsConfirmed)
		assert.Equal(t, "transfer not found", d.RejectionReason)
	})

	t.Run("confirmed cannot change again", func(t *testing.T) {
		d := Donation{Amount: decimal.NewFromInt(100)}
		require.NoError(t, d.Confirm(adminID, now))

		assert.ErrorIs(t, d.Confirm(adminID, now), ErrDonationAlreadyConfirmed)
		assert.ErrorIs(t, d.Reject("late", now), ErrDonationAlreadyConfirmed)
	})

	t.Run("rejected cannot be confirmed", func(t *testing.T) {
		d := Donation{Amount: decimal.NewFromInt(100)}
		require.NoError(t, d.Reject("duplicate", now))

		assert.ErrorIs(t, d.Confirm(adminID, now), ErrDonationAlreadyRejected)
		assert.Nil(t, d.ConfirmedBy)
	})
}

func TestDonation_PublicName(t *testing.T) {
	tests := []struct {
		name     string
		donation Donation
		want     *string
	}{
		{"named donor", Donation{Name: strPtr("Siti")}, strPtr("Siti")},
		{"trims whitespace", Donation{Name: strPtr("  Siti ")}, strPtr("Siti")},
		{"anonymous with stored name", Donation{Name: strPtr("X"), IsAnonymous: true}, nil},
		{"no name", Donation{}, nil},
		{"blank name", Donation{Name: strPtr("   ")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.donation.PublicName())
		})
	}
}

func TestDonation_IsCampaignDonation(t *testing.T) {
	activityID := uuid.New()
	nilID := uuid.Nil

	assert.True(t, (&Donation{ActivityID: &activityID}).IsCampaignDonation())
	assert.False(t, (&Donation{}).IsCampaignDonation())
	assert.False(t, (&Donation{ActivityID: &nilID}).IsCampaignDonation())
}

func TestDonation_BeforeCreate(t *testing.T) {
	d := Donation{Amount: decimal.NewFromInt(250000), Name: strPtr("  ")}

	err := d.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.NotZero(t, d.CreatedAt)
	assert.NotZero(t, d.UpdatedAt)
	assert.Nil(t, d.Name)
}

func TestDonation_BeforeUpdate(t *testing.T) {
	d := Donation{
		Amount:    decimal.NewFromInt(250000),
		UpdatedAt: time.Now().Add(-1 * time.Hour),
	}
	original := d.UpdatedAt

	require.NoError(t, d.BeforeUpdate(nil))
	assert.True(t, d.UpdatedAt.After(original))
}
