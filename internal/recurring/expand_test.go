package recurring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func def(freq model.Frequency, start time.Time) model.Recurring {
	return model.Recurring{
		Kind:      model.RecurringBill,
		ID:        "b1",
		Name:      "Test",
		Amount:    decimal.NewFromInt(1000),
		StartDate: start,
		Frequency: freq,
	}
}

func dates(occs []model.Occurrence) []time.Time {
	out := make([]time.Time, len(occs))
	for i, o := range occs {
		out[i] = o.Date
	}
	return out
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{2024, time.January, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestExpand_MonthlyClampsToLeapDay(t *testing.T) {
	occs := Expand(def(model.Monthly, model.Date(2024, time.January, 31)), 2024, time.February)
	require.Len(t, occs, 1)
	assert.Equal(t, model.Date(2024, time.February, 29), occs[0].Date)
	assert.Equal(t, 29, occs[0].Day)
	assert.Equal(t, "1000", occs[0].Amount.String())
	assert.Equal(t, "b1", occs[0].ID)
}

func TestExpand_MonthlyBeforeStart(t *testing.T) {
	d := def(model.Monthly, model.Date(2024, time.March, 15))
	assert.Empty(t, Expand(d, 2024, time.February))
	assert.Len(t, Expand(d, 2024, time.March), 1)
	assert.Len(t, Expand(d, 2025, time.January), 1)
}

func TestExpand_Weekly(t *testing.T) {
	occs := Expand(def(model.Weekly, model.Date(2024, time.March, 1)), 2024, time.March)
	assert.Equal(t, []time.Time{
		model.Date(2024, time.March, 1),
		model.Date(2024, time.March, 8),
		model.Date(2024, time.March, 15),
		model.Date(2024, time.March, 22),
		model.Date(2024, time.March, 29),
	}, dates(occs))
}

func TestExpand_WeeklyFromEarlierStart(t *testing.T) {
	// 2023-12-29 is a Friday; Fridays in Feb 2024 are 2, 9, 16, 23.
	occs := Expand(def(model.Weekly, model.Date(2023, time.December, 29)), 2024, time.February)
	assert.Equal(t, []time.Time{
		model.Date(2024, time.February, 2),
		model.Date(2024, time.February, 9),
		model.Date(2024, time.February, 16),
		model.Date(2024, time.February, 23),
	}, dates(occs))
}

func TestExpand_WeeklyStartsMidMonth(t *testing.T) {
	occs := Expand(def(model.Weekly, model.Date(2024, time.March, 20)), 2024, time.March)
	assert.Equal(t, []time.Time{
		model.Date(2024, time.March, 20),
		model.Date(2024, time.March, 27),
	}, dates(occs))

	assert.Empty(t, Expand(def(model.Weekly, model.Date(2024, time.April, 1)), 2024, time.March))
}

func TestExpand_BiWeekly(t *testing.T) {
	occs := Expand(def(model.BiWeekly, model.Date(2024, time.January, 5)), 2024, time.March)
	assert.Equal(t, []time.Time{
		model.Date(2024, time.March, 1),
		model.Date(2024, time.March, 15),
		model.Date(2024, time.March, 29),
	}, dates(occs))
}

func TestExpand_WeeklyFromDistantPast(t *testing.T) {
	occs := Expand(def(model.Weekly, time.Time{}), 2024, time.March)
	assert.Len(t, occs, 4, "a week step lands four or five times in March")
	for _, o := range occs {
		assert.Equal(t, time.March, o.Date.Month())
	}
}

func TestExpand_Quarterly(t *testing.T) {
	d := def(model.Quarterly, model.Date(2024, time.January, 31))
	for _, m := range []time.Month{time.January, time.April, time.July, time.October} {
		occs := Expand(d, 2024, m)
		require.Len(t, occs, 1, "month %s", m)
		assert.Equal(t, min(31, DaysIn(2024, m)), occs[0].Day)
	}
	for _, m := range []time.Month{time.February, time.March, time.May, time.December} {
		assert.Empty(t, Expand(d, 2024, m), "month %s", m)
	}
	assert.Len(t, Expand(d, 2025, time.April), 1)
}

func TestExpand_QuarterlyDoesNotWrapYear(t *testing.T) {
	d := def(model.Quarterly, model.Date(2024, time.November, 10))
	assert.Len(t, Expand(d, 2024, time.November), 1)
	assert.Empty(t, Expand(d, 2025, time.February))
	assert.Empty(t, Expand(d, 2025, time.May))
	assert.Empty(t, Expand(d, 2025, time.August))
	assert.Len(t, Expand(d, 2025, time.November), 1)
}

func TestExpand_Yearly(t *testing.T) {
	d := def(model.Yearly, model.Date(2024, time.February, 29))
	assert.Empty(t, Expand(d, 2023, time.February), "before start")

	occs := Expand(d, 2025, time.February)
	require.Len(t, occs, 1)
	assert.Equal(t, model.Date(2025, time.February, 28), occs[0].Date)

	assert.Empty(t, Expand(d, 2025, time.March))
}

func TestExpand_UnknownFrequency(t *testing.T) {
	assert.Empty(t, Expand(def("fortnightly", model.Date(2024, time.January, 1)), 2024, time.January))
	assert.Empty(t, Expand(def("", model.Date(2024, time.January, 1)), 2024, time.January))
}

func TestExpand_PaidFlag(t *testing.T) {
	d := def(model.Weekly, model.Date(2024, time.March, 1))
	d.PaidDates = []time.Time{model.Date(2024, time.March, 8)}

	occs := Expand(d, 2024, time.March)
	require.Len(t, occs, 5)
	assert.False(t, occs[0].Paid)
	assert.True(t, occs[1].Paid)

	d.Kind = model.RecurringIncome
	for _, o := range Expand(d, 2024, time.March) {
		assert.False(t, o.Paid, "income is never marked paid")
	}
}

func TestExpandAll(t *testing.T) {
	rent := def(model.Monthly, model.Date(2024, time.January, 1))
	rent.Name = "Rent"
	gym := def(model.Weekly, model.Date(2024, time.March, 1))
	gym.Name = "Gym"
	gym.Amount = decimal.NewFromInt(10)
	broken := def("daily", model.Date(2024, time.January, 1))

	occs := ExpandAll([]model.Recurring{gym, broken, rent}, 2024, time.March)
	require.Len(t, occs, 6)
	assert.Equal(t, "Gym", occs[0].Name)
	assert.Equal(t, "Rent", occs[1].Name, "same date keeps definition order")
	for i := 1; i < len(occs); i++ {
		assert.False(t, occs[i].Date.Before(occs[i-1].Date))
	}
	assert.Equal(t, "1050", MonthTotal(occs).String())
}

func TestMonthTotal_Empty(t *testing.T) {
	assert.True(t, MonthTotal(nil).IsZero())
}

func TestMarkPaid(t *testing.T) {
	bill := def(model.Monthly, model.Date(2024, time.January, 1))
	paid := MarkPaid(bill, time.Date(2024, time.February, 1, 18, 0, 0, 0, time.UTC))
	assert.Empty(t, bill.PaidDates, "original untouched")
	assert.Equal(t, []time.Time{model.Date(2024, time.February, 1)}, paid.PaidDates)

	again := MarkPaid(paid, model.Date(2024, time.February, 1))
	assert.Len(t, again.PaidDates, 1)

	earlier := MarkPaid(again, model.Date(2024, time.January, 1))
	assert.Equal(t, []time.Time{model.Date(2024, time.January, 1), model.Date(2024, time.February, 1)}, earlier.PaidDates)
}

func TestNewDraft(t *testing.T) {
	now := time.Date(2024, time.May, 17, 13, 45, 0, 0, time.UTC)
	d := NewDraft(model.RecurringIncome, now)
	assert.Equal(t, model.RecurringIncome, d.Kind)
	assert.Equal(t, model.Date(2024, time.May, 17), d.StartDate)
	assert.Equal(t, model.Monthly, d.Frequency)
	assert.Equal(t, model.Uncategorized, d.Category)
	assert.True(t, d.Amount.IsZero())

	occs := Expand(d, 2024, time.May)
	require.Len(t, occs, 1)
	assert.Equal(t, 17, occs[0].Day)
}
