package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNeedWant(t *testing.T) {
	tests := []struct {
		in   string
		want NeedWant
	}{
		{"need", Need},
		{" Want ", Want},
		{"NEED", Need},
		{"", NeedWantNone},
		{"maybe", NeedWantNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNeedWant(tt.in), "ParseNeedWant(%q)", tt.in)
	}
}

func TestParseMatchType(t *testing.T) {
	mt, ok := ParseMatchType("StartsWith")
	require.True(t, ok)
	assert.Equal(t, MatchStartsWith, mt)

	_, ok = ParseMatchType("regex")
	assert.False(t, ok)
}

func TestFrequencyValid(t *testing.T) {
	for _, f := range []Frequency{Weekly, BiWeekly, Monthly, Quarterly, Yearly} {
		assert.True(t, f.Valid(), "%s should be valid", f)
	}
	assert.False(t, Frequency("daily").Valid())
	assert.False(t, Frequency("").Valid())
}

func TestCategoryIsUncategorized(t *testing.T) {
	assert.True(t, Category{ID: "uncategorized"}.IsUncategorized())
	assert.True(t, Category{ID: "misc", Name: "uncategorized"}.IsUncategorized())
	assert.False(t, Category{ID: "food", Name: "Food"}.IsUncategorized())
}

func TestRecurringIsPaid(t *testing.T) {
	bill := Recurring{
		Kind:      RecurringBill,
		PaidDates: []time.Time{Date(2024, time.March, 1)},
	}
	assert.True(t, bill.IsPaid(time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC)))
	assert.False(t, bill.IsPaid(Date(2024, time.April, 1)))
}
