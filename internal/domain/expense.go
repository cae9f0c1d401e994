package domain

import "time"

type ExpenseCategory string

const (
	ExpenseCategoryFixed    ExpenseCategory = "fixas"
	ExpenseCategoryVariable ExpenseCategory = "variaveis"
	ExpenseCategoryTaxes    ExpenseCategory = "impostos"
	ExpenseCategoryOther    ExpenseCategory = "outras"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryFixed, ExpenseCategoryVariable, ExpenseCategoryTaxes, ExpenseCategoryOther:
		return true
	}
	return false
}

type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	UserID      string          `json:"user_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
