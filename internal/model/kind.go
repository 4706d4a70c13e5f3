package model

// Kind names a record kind accepted by the import path.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindCategories   Kind = "categories"
	KindRules        Kind = "rules"
	KindBills        Kind = "bills"
	KindIncome       Kind = "income"
)

// Kinds lists every record kind in import order.
func Kinds() []Kind {
	return []Kind{KindCategories, KindRules, KindTransactions, KindBills, KindIncome}
}
