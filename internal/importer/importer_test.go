package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

func newTestImporter() *Importer {
	return New(
		WithIDs(id.NewSequence("rec", 0)),
		WithNow(model.Date(2024, time.June, 15)),
	)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.5"},
		{" -5.00 ", "-5"},
		{"$1,234.56", "1234.56"},
		{"-$40", "-40"},
	}
	for _, tt := range tests {
		d, err := ParseAmount(tt.in)
		require.NoError(t, err, "input: %q", tt.in)
		assert.Equal(t, tt.want, d.String())
	}

	for _, in := range []string{"", "abc", "NaN", "1.2.3"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input: %q", in)
	}
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON("  [ ]"))
	assert.True(t, IsJSON("{}"))
	assert.False(t, IsJSON("date,description,amount"))
	assert.False(t, IsJSON("   "))
}

func TestTransactionsCSV(t *testing.T) {
	text := `Date,Description,Amount,Category,Need/Want,Merchant,Notes
2024-03-01,Starbucks,-5.00,,want,,
03/02/2024,"Rent, March",-1500,Housing,need,Landlord LLC,paid early
`
	res, err := newTestImporter().Transactions(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Empty(t, res.Issues)

	first := res.Records[0]
	assert.Equal(t, "rec-0001", first.ID)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, "Starbucks", first.Description)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("-5")))
	assert.Equal(t, model.Uncategorized, first.Category)
	assert.Equal(t, model.Want, first.NeedWant)
	assert.Equal(t, "Starbucks", first.MerchantName, "falls back to description")

	second := res.Records[1]
	assert.Equal(t, "2024-03-02", second.Date)
	assert.Equal(t, "Rent, March", second.Description)
	assert.Equal(t, "Housing", second.Category)
	assert.Equal(t, model.Need, second.NeedWant)
	assert.Equal(t, "Landlord LLC", second.MerchantName)
	assert.Equal(t, "paid early", second.Memo)
}

func TestTransactionsCSV_DropsUnparseableAmount(t *testing.T) {
	text := `date,description,amount
2024-03-01,Coffee,-4.50
2024-03-02,Broken,not-a-number
2024-03-03,Salary,2000
`
	res, err := newTestImporter().TransactionsCSV(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Coffee", res.Records[0].Description)
	assert.Equal(t, "Salary", res.Records[1].Description)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, errs.Issue{Code: errs.CoerceAmount, Row: 2, Field: "amount", Value: "not-a-number", Action: errs.Dropped}, res.Issues[0])
}

func TestTransactionsCSV_FriendlyName(t *testing.T) {
	text := "date,description,amount,Friendly Name\n2024-01-05,AMZN MKTP US*123,-20,Amazon\n"
	res, err := newTestImporter().TransactionsCSV(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Amazon", res.Records[0].MerchantName)
}

func TestTransactionsCSV_KeepsExplicitID(t *testing.T) {
	text := "id,date,description,amount,autoCategorized\nabc,2024-01-05,x,1,true\n"
	res, err := newTestImporter().TransactionsCSV(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "abc", res.Records[0].ID)
	assert.True(t, res.Records[0].AutoCategorized)
}

func TestTransactionsCSV_UnknownDateKept(t *testing.T) {
	text := "date,description,amount\nsoon,x,1\n"
	res, err := newTestImporter().TransactionsCSV(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "soon", res.Records[0].Date)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, errs.CoerceDate, res.Issues[0].Code)
	assert.Equal(t, errs.Kept, res.Issues[0].Action)
}

func TestTransactionsCSV_FormatErrors(t *testing.T) {
	_, err := newTestImporter().TransactionsCSV("  \n ")
	require.ErrorIs(t, err, errs.ErrFormat)
	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.FormatEmpty, fe.Code)

	_, err = newTestImporter().TransactionsCSV("when,what\n2024-01-01,x\n")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.FormatMissingColumns, fe.Code)
	assert.Equal(t, []string{"date", "description", "amount"}, fe.Missing)
}

func TestTransactionsCSV_UniqueIDs(t *testing.T) {
	text := "date,description,amount\n2024-01-01,a,1\n2024-01-02,b,2\n2024-01-03,c,3\n"
	res, err := New().TransactionsCSV(text)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, r := range res.Records {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestTransactionsJSON(t *testing.T) {
	text := `[
  {"date": "2024-03-01", "description": "Paycheck", "amount": 2500.10, "needWant": "need"},
  {"date": "2024-03-02", "description": "Lunch", "amount": "-$12.00", "category": "Food & Dining", "merchantName": "Deli"},
  {"date": "2024-03-03", "description": "Bad", "amount": "twelve"},
  "not an object"
]`
	res, err := newTestImporter().Transactions(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	assert.Equal(t, "2500.1", res.Records[0].Amount.String())
	assert.Equal(t, model.Need, res.Records[0].NeedWant)
	assert.Equal(t, "Paycheck", res.Records[0].MerchantName)
	assert.Equal(t, "-12", res.Records[1].Amount.String())
	assert.Equal(t, "Deli", res.Records[1].MerchantName)

	require.Len(t, res.Issues, 2)
	assert.Equal(t, errs.CoerceAmount, res.Issues[0].Code)
	assert.Equal(t, 2, res.Issues[0].Row, "JSON rows are 0-based element indexes")
	assert.Equal(t, errs.ShapeElement, res.Issues[1].Code)
	assert.Equal(t, 3, res.Issues[1].Row)
}

func TestTransactionsJSON_RootMustBeArray(t *testing.T) {
	_, err := newTestImporter().Transactions(`{"date": "2024-01-01"}`)
	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.FormatJSONRoot, fe.Code)

	_, err = newTestImporter().TransactionsJSON(`[{"date":`)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.FormatJSON, fe.Code)
}

func TestCategoriesCSV(t *testing.T) {
	text := `name,color,type,keywords,budgeted,needWant
Food & Dining,#f00,expense,"starbucks, coffee,,grocery",400,want
Salary,#0f0,income,payroll,,
Food & Dining,#00f,sideways,,-50,maybe
`
	res, err := newTestImporter().Categories(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	food := res.Records[0]
	assert.Equal(t, "food-dining", food.ID)
	assert.Equal(t, model.CategoryTypeExpense, food.Type)
	assert.Equal(t, []string{"starbucks", "coffee", "grocery"}, food.Keywords)
	assert.Equal(t, "400", food.Budgeted.String())
	assert.Equal(t, model.Want, food.NeedWant)

	assert.Equal(t, model.CategoryTypeIncome, res.Records[1].Type)
	assert.Equal(t, []string{"payroll"}, res.Records[1].Keywords)

	dup := res.Records[2]
	assert.Equal(t, "food-dining-2", dup.ID)
	assert.Equal(t, model.CategoryTypeExpense, dup.Type)
	assert.Equal(t, "50", dup.Budgeted.String())
	assert.Equal(t, model.NeedWantNone, dup.NeedWant)

	codes := make([]errs.Code, len(res.Issues))
	for i, is := range res.Issues {
		codes[i] = is.Code
	}
	assert.Equal(t, []errs.Code{errs.CoerceEnum, errs.CoerceEnum}, codes)
}

func TestCategoriesCSV_MissingColumns(t *testing.T) {
	_, err := newTestImporter().CategoriesCSV("name,colour,kind\nFood,red,expense\n")
	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"color", "type"}, fe.Missing)
	assert.Equal(t, "colour", fe.Hints["color"])
}

func TestCategoriesJSON(t *testing.T) {
	text := `[{"id": "eat", "name": "Food", "type": "both", "keywords": ["cafe", " deli ", ""], "budgeted": 120}]`
	res, err := newTestImporter().CategoriesJSON(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	c := res.Records[0]
	assert.Equal(t, "eat", c.ID)
	assert.Equal(t, model.CategoryTypeBoth, c.Type)
	assert.Equal(t, []string{"cafe", "deli"}, c.Keywords)
	assert.Equal(t, "120", c.Budgeted.String())
}

func TestRulesCSV(t *testing.T) {
	text := `pattern,category,matchType,caseSensitive,priority
NETFLIX,Entertainment,exact,true,5
uber,Transport,,,
shell,Transport,regex,,0
`
	res, err := newTestImporter().Rules(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	assert.Equal(t, model.MatchExact, res.Records[0].MatchType)
	assert.True(t, res.Records[0].CaseSensitive)
	assert.Equal(t, 5, res.Records[0].Priority)

	assert.Equal(t, model.MatchContains, res.Records[1].MatchType)
	assert.False(t, res.Records[1].CaseSensitive)
	assert.Equal(t, 2, res.Records[1].Priority, "defaults to 1-based position")

	assert.Equal(t, model.MatchContains, res.Records[2].MatchType)
	assert.Equal(t, 3, res.Records[2].Priority, "non-positive priority falls back to position")
	assert.Len(t, res.Issues, 2)
}

func TestRulesJSON(t *testing.T) {
	text := `[{"pattern": "amzn", "category": "Shopping", "matchType": "startsWith", "priority": "x"}]`
	res, err := newTestImporter().RulesJSON(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, model.MatchStartsWith, res.Records[0].MatchType)
	assert.Equal(t, 1, res.Records[0].Priority)
	assert.Equal(t, "rec-0001", res.Records[0].ID)
}

func TestBillsCSV(t *testing.T) {
	text := `name,amount,dueDate,frequency,category,paidDates
Rent,"1,500.00",2024-01-01,,Housing,"2024-01-01;2024-02-01"
Gym,-30,2024-01-15,Weekly,,garbage
Mystery,abc,not-a-date,fortnightly,,
`
	res, err := newTestImporter().Bills(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	rent := res.Records[0]
	assert.Equal(t, model.RecurringBill, rent.Kind)
	assert.Equal(t, "1500", rent.Amount.String())
	assert.Equal(t, model.Date(2024, time.January, 1), rent.StartDate)
	assert.Equal(t, model.Monthly, rent.Frequency)
	assert.Equal(t, "Housing", rent.Category)
	assert.Equal(t, []time.Time{model.Date(2024, time.January, 1), model.Date(2024, time.February, 1)}, rent.PaidDates)

	gym := res.Records[1]
	assert.Equal(t, "30", gym.Amount.String(), "negative amounts are made positive")
	assert.Equal(t, model.Weekly, gym.Frequency)
	assert.Equal(t, model.Uncategorized, gym.Category)
	assert.Empty(t, gym.PaidDates)

	mystery := res.Records[2]
	assert.True(t, mystery.Amount.IsZero())
	assert.Equal(t, model.Date(2024, time.June, 15), mystery.StartDate, "defaults to now")
	assert.Equal(t, model.Frequency("fortnightly"), mystery.Frequency)

	codes := make([]errs.Code, len(res.Issues))
	for i, is := range res.Issues {
		codes[i] = is.Code
	}
	assert.Equal(t, []errs.Code{errs.CoerceDate, errs.CoerceAmount, errs.CoerceDate, errs.ShapeFrequency}, codes)
}

func TestIncomeCSV_RequiresStartDate(t *testing.T) {
	_, err := newTestImporter().IncomeCSV("name,amount,dueDate\nJob,100,2024-01-01\n")
	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"startDate"}, fe.Missing)

	res, err := newTestImporter().IncomeCSV("name,amount,startDate,frequency\nJob,2000,2024-01-05,bi-weekly\n")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, model.RecurringIncome, res.Records[0].Kind)
	assert.Equal(t, model.BiWeekly, res.Records[0].Frequency)
}

func TestIncomeJSON(t *testing.T) {
	text := `[{"name": "Job", "amount": 2000, "startDate": "2024-01-05", "frequency": "weekly", "memo": "net"}]`
	res, err := newTestImporter().Income(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	r := res.Records[0]
	assert.Equal(t, "2000", r.Amount.String())
	assert.Equal(t, model.Date(2024, time.January, 5), r.StartDate)
	assert.Equal(t, "net", r.Memo)
}

func TestBillsJSON_PaidDatesArray(t *testing.T) {
	text := `[{"name": "Phone", "amount": "45", "dueDate": "2024-02-10", "paidDates": ["2024-02-10", "2024-03-10"]}]`
	res, err := newTestImporter().BillsJSON(text)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Len(t, res.Records[0].PaidDates, 2)
}
