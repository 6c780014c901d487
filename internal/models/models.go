package models

import "time"

// Category types. The two-letter codes are part of the API contract.
const (
	CategoryIncome  = "IN"
	CategoryExpense = "EX"
)

// Budget periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CatType string `json:"cat_type"`
	UserID  string `json:"user"`
}

type Income struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  *string   `json:"category"`
	UserID      string    `json:"user"`
}

type Expense struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  *string   `json:"category"`
	UserID      string    `json:"user"`
}

// Savings is a derived snapshot: total is recomputed from the owner's
// income and expense records on every read, never maintained incrementally.
type Savings struct {
	ID     string  `json:"id"`
	Total  float64 `json:"total"`
	UserID string  `json:"user"`
}

type Budget struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	TargetAmount  float64      `json:"target_amount"`
	CurrentAmount float64      `json:"current_amount"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Period        string       `json:"period"`
	UserID        string       `json:"user"`
	Items         []BudgetItem `json:"items"`
}

type BudgetItem struct {
	ID       string  `json:"id"`
	BudgetID string  `json:"-"`
	Category string  `json:"category"`
	Planned  float64 `json:"planned"`
	Actual   float64 `json:"actual"`
	Color    *string `json:"color"`
	// Derived fields, populated by the service layer before serialization.
	Remaining float64 `json:"remaining"`
	Progress  float64 `json:"progress"`
}

type Goal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      time.Time `json:"deadline"`
	UserID        string    `json:"user"`
	// Derived, populated before serialization.
	Progress float64 `json:"progress"`
}
