package membership_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/membership"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanDays(t *testing.T) {
	tests := []struct {
		plan membership.Plan
		want int
	}{
		{membership.Day, 1},
		{membership.Weekly, 7},
		{membership.Biweekly, 15},
		{membership.Monthly, 30},
		{membership.Plan(0), 0},
		{membership.Plan(99), 0},
	}
	for _, tt := range tests {
		t.Run(tt.plan.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.Days())
			assert.Equal(t, tt.want > 0, tt.plan.Valid())
		})
	}
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in      string
		want    membership.Plan
		wantErr bool
	}{
		{"Monthly", membership.Monthly, false},
		{"weekly", membership.Weekly, false},
		{" Biweekly ", membership.Biweekly, false},
		{"Day", membership.Day, false},
		{"Mensual", membership.Monthly, false},
		{"Quincenal", membership.Biweekly, false},
		{"Semanal", membership.Weekly, false},
		{"Día", membership.Day, false},
		{"", 0, true},
		{"Yearly", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := membership.ParsePlan(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlanRoundTripsCanonicalNames(t *testing.T) {
	for _, p := range membership.Plans {
		got, err := membership.ParsePlan(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestNextExpiration(t *testing.T) {
	today := date(2024, 1, 5)

	t.Run("no current expiration starts from reference", func(t *testing.T) {
		for _, p := range membership.Plans {
			got := membership.NextExpiration(time.Time{}, p, today)
			assert.Equal(t, today.AddDate(0, 0, p.Days()), got, p.String())
		}
	})

	t.Run("unexpired membership stacks", func(t *testing.T) {
		got := membership.NextExpiration(date(2024, 1, 10), membership.Weekly, today)
		assert.Equal(t, date(2024, 1, 17), got)
	})

	t.Run("expiring today still stacks", func(t *testing.T) {
		got := membership.NextExpiration(today, membership.Monthly, today)
		assert.Equal(t, date(2024, 2, 4), got)
	})

	t.Run("lapsed membership resets", func(t *testing.T) {
		got := membership.NextExpiration(date(2024, 1, 10), membership.Day, date(2024, 1, 20))
		assert.Equal(t, date(2024, 1, 21), got)
	})

	t.Run("reference time of day is ignored", func(t *testing.T) {
		ref := time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC)
		got := membership.NextExpiration(time.Time{}, membership.Day, ref)
		assert.Equal(t, date(2024, 1, 6), got)
	})
}

func TestStatusOn(t *testing.T) {
	today := date(2024, 3, 1)
	assert.Equal(t, membership.StatusActive, membership.StatusOn(date(2024, 3, 1), today))
	assert.Equal(t, membership.StatusActive, membership.StatusOn(date(2024, 3, 9), today))
	assert.Equal(t, membership.StatusExpired, membership.StatusOn(date(2024, 2, 29), today))
	assert.Equal(t, membership.StatusUnknown, membership.StatusOn(time.Time{}, today))
}

func TestParseDate(t *testing.T) {
	got, err := membership.ParseDate("2024-01-17")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 17), got)

	_, err = membership.ParseDate("17/01/2024")
	assert.True(t, apperr.IsValidation(err))
}
