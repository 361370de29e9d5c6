package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_Validate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	tests := []struct {
		name     string
		activity Activity
		wantErr  error
	}{
		{
			name:     "valid activity",
			activity: Activity{Title: "Flood relief", Slug: "flood-relief", TargetAmount: decimal.NewFromInt(1000000), StartDate: &start, EndDate: &end},
		},
		{
			name:     "missing title",
			activity: Activity{Slug: "x"},
			wantErr:  ErrActivityTitleRequired,
		},
		{
			name:     "bad slug",
			activity: Activity{Title: "Flood", Slug: "Flood Relief"},
			wantErr:  ErrActivityInvalidSlug,
		},
		{
			name:     "negative target",
			activity: Activity{Title: "Flood", Slug: "flood", TargetAmount: decimal.NewFromInt(-1)},
			wantErr:  ErrActivityNegativeGoal,
		},
		{
			name:     "end before start",
			activity: Activity{Title: "Flood", Slug: "flood", StartDate: &end, EndDate: &start},
			wantErr:  ErrActivityInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.activity.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivity_Progress(t *testing.T) {
	a := Activity{TargetAmount: decimal.NewFromInt(3000000)}
	assert.True(t, decimal.NewFromFloat(33.33).Equal(a.Progress(decimal.NewFromInt(1000000))))
	assert.True(t, decimal.NewFromInt(150).Equal(a.Progress(decimal.NewFromInt(4500000))))

	noTarget := Activity{}
	assert.True(t, decimal.Zero.Equal(noTarget.Progress(decimal.NewFromInt(100))))
}

func TestActivity_IsActiveAt(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	a := Activity{StartDate: &start, EndDate: &end}

	assert.True(t, a.IsActiveAt(start.AddDate(0, 0, 5)))
	assert.False(t, a.IsActiveAt(start.AddDate(0, 0, -1)))
	assert.False(t, a.IsActiveAt(end.AddDate(0, 0, 1)))
	assert.True(t, (&Activity{}).IsActiveAt(time.Now()))
}

func TestActivity_BeforeCreateGeneratesSlug(t *testing.T) {
	a := Activity{Title: "  Ramadan Food Packages 2025! "}

	require.NoError(t, a.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "ramadan-food-packages-2025", a.Slug)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "clean-water-for-lombok", Slugify("Clean Water for Lombok"))
	assert.Equal(t, "a-b", Slugify("--a__b--"))
	assert.Equal(t, "", Slugify("!!!"))
}
