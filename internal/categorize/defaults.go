package categorize

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// DefaultCategories returns the built-in category list in match order.
func DefaultCategories() []model.Category {
	return []model.Category{
		cat("income", model.Income, "#22c55e", model.CategoryTypeIncome, model.NeedWantNone,
			"salary", "payroll", "paycheck", "direct dep", "dividend", "interest paid", "tax refund"),
		cat("housing", "Housing", "#6366f1", model.CategoryTypeExpense, model.Need,
			"rent", "mortgage", "hoa dues", "property tax"),
		cat("utilities", "Utilities", "#0ea5e9", model.CategoryTypeExpense, model.Need,
			"electric", "water bill", "gas bill", "internet", "comcast", "verizon", "at&t", "utility"),
		cat("groceries", "Groceries", "#84cc16", model.CategoryTypeExpense, model.Need,
			"grocery", "whole foods", "trader joe", "safeway", "kroger", "aldi", "costco"),
		cat("food-dining", "Food & Dining", "#f97316", model.CategoryTypeExpense, model.Want,
			"starbucks", "coffee", "cafe", "restaurant", "doordash", "grubhub", "uber eats", "mcdonald", "chipotle", "pizza"),
		cat("transportation", "Transportation", "#eab308", model.CategoryTypeExpense, model.Need,
			"uber", "lyft", "shell", "chevron", "exxon", "parking", "transit", "toll"),
		cat("shopping", "Shopping", "#ec4899", model.CategoryTypeExpense, model.Want,
			"amazon", "amzn", "target", "walmart", "best buy", "etsy"),
		cat("entertainment", "Entertainment", "#a855f7", model.CategoryTypeExpense, model.Want,
			"netflix", "spotify", "hulu", "disney", "cinema", "steam"),
		cat("health-fitness", "Health & Fitness", "#14b8a6", model.CategoryTypeExpense, model.Need,
			"pharmacy", "cvs", "walgreens", "doctor", "dental", "gym"),
		cat("insurance", "Insurance", "#f43f5e", model.CategoryTypeExpense, model.Need,
			"insurance", "geico", "progressive", "state farm"),
		cat("transfers", "Transfers", "#64748b", model.CategoryTypeBoth, model.NeedWantNone,
			"transfer", "zelle", "venmo"),
		cat(model.UncategorizedID, model.Uncategorized, "#9ca3af", model.CategoryTypeBoth, model.NeedWantNone),
	}
}

func cat(id, name, color string, t model.CategoryType, nw model.NeedWant, keywords ...string) model.Category {
	if keywords == nil {
		keywords = []string{}
	}
	return model.Category{
		ID:       id,
		Name:     name,
		Color:    color,
		Type:     t,
		Keywords: keywords,
		Budgeted: decimal.Zero,
		NeedWant: nw,
	}
}
