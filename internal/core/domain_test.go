package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCategorySetEqual(t *testing.T) {
	cases := []struct {
		a, b CategorySet
		want bool
	}{
		{CategorySet{1, 2}, CategorySet{2, 1}, true},
		{CategorySet{1, 1, 2}, CategorySet{2, 1}, true}, // duplicates ignored
		{CategorySet{1}, CategorySet{1}, true},
		{CategorySet{}, nil, true},
		{CategorySet{1, 2}, CategorySet{1}, false},
		{CategorySet{1}, CategorySet{2}, false},
	}
	for i, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("case %d: Equal(%v, %v) = %v, want %v", i, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCategorySetIsTransferOnly(t *testing.T) {
	cases := []struct {
		s    CategorySet
		want bool
	}{
		{CategorySet{8}, true},
		{CategorySet{9}, true},
		{CategorySet{8, 9}, false},
		{CategorySet{8, 1}, false},
		{CategorySet{1}, false},
		{CategorySet{}, false},
	}
	for i, tc := range cases {
		if got := tc.s.IsTransferOnly(); got != tc.want {
			t.Fatalf("case %d: IsTransferOnly(%v) = %v, want %v", i, tc.s, got, tc.want)
		}
	}
}

func TestIsReservedBudgetName(t *testing.T) {
	for _, name := range []string{BudgetNameIncome, BudgetNameSpent} {
		if !IsReservedBudgetName(name) {
			t.Fatalf("expected %q to be reserved", name)
		}
	}
	for _, name := range []string{"rent", "", "Income", "INCOME"} {
		if IsReservedBudgetName(name) {
			t.Fatalf("expected %q not to be reserved", name)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	good := Income{
		Amount:      decimal.NewFromInt(100),
		Description: "salary",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Income{
		{Amount: decimal.NewFromInt(1), Description: "", Date: good.Date},
		{Amount: decimal.NewFromInt(-1), Description: "a", Date: good.Date},
		{Amount: decimal.NewFromInt(1), Description: "a"}, // zero date
	}
	for i, in := range bads {
		err := in.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %T", i, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		Amount: decimal.NewFromInt(500),
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Name:   "rent",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{Amount: decimal.NewFromInt(-1), Date: good.Date}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if err := (Budget{Amount: decimal.NewFromInt(1)}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}
