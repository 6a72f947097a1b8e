package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BudgetNameIncome marks a budget row holding the planned income total
	// for its month rather than a per-category plan.
	BudgetNameIncome = "income"
	// BudgetNameSpent marks a budget row holding the planned spending total
	// for its month.
	BudgetNameSpent = "spent"
)

// TransferCategoryIDs are the category identifiers used for moving money
// between accounts. Expenses tagged with exactly one of these are not real
// spending and are excluded from percentage and time-series aggregation.
var TransferCategoryIDs = []int64{8, 9}

type (
	User struct {
		ID           int64  `json:"id"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
	}

	Category struct {
		ID     int64  `json:"id"`
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
	}

	Income struct {
		ID          int64           `json:"id"`
		UserID      int64           `json:"user_id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
	}

	Expense struct {
		ID          int64           `json:"id"`
		UserID      int64           `json:"user_id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		Categories  CategorySet     `json:"category_ids"`
	}

	Budget struct {
		ID         int64           `json:"id"`
		UserID     int64           `json:"user_id"`
		Amount     decimal.Decimal `json:"amount"`
		Date       time.Time       `json:"date"`
		Name       string          `json:"name"`
		CategoryID int64           `json:"category_id"`
	}
)

// CategorySet is the list of category ids attached to an expense. The list
// keeps its stored order but compares with set semantics.
type CategorySet []int64

// Equal reports whether both sets hold the same ids, ignoring order and
// duplicates.
func (s CategorySet) Equal(other CategorySet) bool {
	return s.asMap().equal(other.asMap())
}

// Contains reports whether id is a member of the set.
func (s CategorySet) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// IsTransferOnly reports whether the set is exactly one of the reserved
// transfer categories.
func (s CategorySet) IsTransferOnly() bool {
	for _, id := range TransferCategoryIDs {
		if s.Equal(CategorySet{id}) {
			return true
		}
	}
	return false
}

type idSet map[int64]struct{}

func (s CategorySet) asMap() idSet {
	m := make(idSet, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

func (a idSet) equal(b idSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// IsReservedBudgetName reports whether name denotes a planned monthly total.
func IsReservedBudgetName(name string) bool {
	return name == BudgetNameIncome || name == BudgetNameSpent
}

func (u User) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return Validationf("first name is required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		return Validationf("last name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return Validationf("email is required")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Validationf("name is required")
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return Validationf("description is required")
	}
	if i.Amount.IsNegative() {
		return Validationf("amount must not be negative")
	}
	if i.Date.IsZero() {
		return Validationf("date is required")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return Validationf("description is required")
	}
	if e.Amount.IsNegative() {
		return Validationf("amount must not be negative")
	}
	if e.Date.IsZero() {
		return Validationf("date is required")
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Amount.IsNegative() {
		return Validationf("amount must not be negative")
	}
	if b.Date.IsZero() {
		return Validationf("date is required")
	}
	return nil
}
