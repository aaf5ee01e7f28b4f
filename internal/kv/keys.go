package kv

// Persisted state keys. These names are the storage contract and must not
// change without a data migration.
const (
	KeyExpenses        = "expenses"
	KeyTransportLogs   = "transportLogs"
	KeyTimeLogs        = "timeLogs"
	KeyNamedBudgets    = "namedBudgets"
	KeyArchivedBudgets = "archivedBudgets"
	KeyQuarterlyBudget = "quarterlyBudgets"
	KeyMonthlyBudget   = "monthlyBudget"
	KeyBudgetConfig    = "budgetConfig"
)
