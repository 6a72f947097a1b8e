package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/storage"
)

type fakeStore struct {
	budgets    []core.Budget
	categories []core.Category
	expenses   []core.Expense
	incomes    []core.Income
}

func inRange(d time.Time, rng *storage.DateRange) bool {
	if rng == nil {
		return true
	}
	return !d.Before(rng.Start) && !d.After(rng.End)
}

func (f *fakeStore) Budgets(_ context.Context, userID int64, rng *storage.DateRange) ([]core.Budget, error) {
	var out []core.Budget
	for _, b := range f.budgets {
		if b.UserID == userID && inRange(b.Date, rng) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) BudgetByName(_ context.Context, userID int64, rng storage.DateRange, name string) (core.Budget, error) {
	for _, b := range f.budgets {
		if b.UserID == userID && b.Name == name && inRange(b.Date, &rng) {
			return b, nil
		}
	}
	return core.Budget{}, &core.NotFoundError{Entity: "budget"}
}

func (f *fakeStore) CategoryByID(_ context.Context, userID, id int64) (core.Category, error) {
	for _, c := range f.categories {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, &core.NotFoundError{Entity: "category"}
}

func (f *fakeStore) Expenses(_ context.Context, userID int64, rng *storage.DateRange, limit int) ([]core.Expense, error) {
	var out []core.Expense
	for _, e := range f.expenses {
		if e.UserID == userID && inRange(e.Date, rng) {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SumExpensesByCategory(_ context.Context, userID, categoryID int64, rng storage.DateRange) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.expenses {
		if e.UserID == userID && inRange(e.Date, &rng) && e.Categories.Equal(core.CategorySet{categoryID}) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (f *fakeStore) Incomes(_ context.Context, userID int64, rng *storage.DateRange) ([]core.Income, error) {
	var out []core.Income
	for _, in := range f.incomes {
		if in.UserID == userID && inRange(in.Date, rng) {
			out = append(out, in)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestBudgetSummary(t *testing.T) {
	store := &fakeStore{
		categories: []core.Category{
			{ID: 1, UserID: 1, Name: "groceries"},
			{ID: 2, UserID: 1, Name: "rent"},
		},
		budgets: []core.Budget{
			{ID: 1, UserID: 1, Amount: amt(400), Date: day(2024, time.March, 1), Name: "groceries", CategoryID: 1},
			{ID: 2, UserID: 1, Amount: amt(100), Date: day(2024, time.March, 1), Name: "rent", CategoryID: 2},
			{ID: 3, UserID: 1, Amount: amt(5000), Date: day(2024, time.March, 1), Name: core.BudgetNameIncome},
			{ID: 4, UserID: 1, Amount: amt(3000), Date: day(2024, time.March, 1), Name: core.BudgetNameSpent},
			{ID: 5, UserID: 1, Amount: amt(999), Date: day(2024, time.April, 1), Name: "groceries", CategoryID: 1},
		},
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(150), Date: day(2024, time.March, 5), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(90), Date: day(2024, time.March, 20), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(500), Date: day(2024, time.March, 2), Categories: core.CategorySet{2}},
			// multi-category rows never count toward a single budget
			{UserID: 1, Amount: amt(70), Date: day(2024, time.March, 9), Categories: core.CategorySet{1, 2}},
			{UserID: 1, Amount: amt(40), Date: day(2024, time.April, 1), Categories: core.CategorySet{1}},
		},
	}
	engine := NewEngine(store)

	lines, err := engine.BudgetSummary(context.Background(), 1, day(2024, time.March, 15))
	if err != nil {
		t.Fatalf("budget summary: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (reserved rows skipped)", len(lines))
	}

	groceries := lines[0]
	if groceries.Name != "groceries" || !groceries.Spent.Equal(amt(240)) || !groceries.Remaining.Equal(amt(160)) {
		t.Errorf("groceries line = %+v", groceries)
	}
	rent := lines[1]
	if !rent.Spent.Equal(amt(500)) {
		t.Errorf("rent spent = %s, want 500", rent.Spent)
	}
	if !rent.Remaining.Equal(decimal.Zero) {
		t.Errorf("overspent budget remaining = %s, want 0", rent.Remaining)
	}
}

func TestBudgetSummaryEmptyMonth(t *testing.T) {
	engine := NewEngine(&fakeStore{})

	lines, err := engine.BudgetSummary(context.Background(), 1, day(2024, time.March, 1))
	if err != nil {
		t.Fatalf("budget summary: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("empty month produced %d lines", len(lines))
	}
}

func TestBudgetSummaryDanglingCategory(t *testing.T) {
	store := &fakeStore{
		budgets: []core.Budget{
			{ID: 1, UserID: 1, Amount: amt(100), Date: day(2024, time.March, 1), Name: "old", CategoryID: 42},
		},
	}
	engine := NewEngine(store)

	lines, err := engine.BudgetSummary(context.Background(), 1, day(2024, time.March, 1))
	if err != nil {
		t.Fatalf("budget summary: %v", err)
	}
	if len(lines) != 1 || lines[0].Name != "" {
		t.Errorf("dangling category line = %+v, want empty name", lines)
	}
}

func TestExpenseIncomeSummary(t *testing.T) {
	store := &fakeStore{
		budgets: []core.Budget{
			{ID: 1, UserID: 1, Amount: amt(5500), Date: day(2024, time.March, 1), Name: core.BudgetNameIncome},
			{ID: 2, UserID: 1, Amount: amt(3500), Date: day(2024, time.March, 1), Name: core.BudgetNameSpent},
		},
		incomes: []core.Income{
			{UserID: 1, Amount: amt(5000), Date: day(2024, time.March, 1)},
			{UserID: 1, Amount: amt(700), Date: day(2024, time.April, 1)},
		},
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(3000), Date: day(2024, time.March, 10), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(200), Date: day(2024, time.March, 31), Categories: core.CategorySet{2}},
		},
	}
	engine := NewEngine(store)

	s, err := engine.ExpenseIncomeSummary(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !s.Income.Actual.Equal(amt(5000)) || !s.Spent.Actual.Equal(amt(3200)) {
		t.Errorf("actuals = income %s, spent %s", s.Income.Actual, s.Spent.Actual)
	}
	if !s.Balance.Equal(amt(1800)) {
		t.Errorf("balance = %s, want 1800", s.Balance)
	}
	if !s.Income.Planned.Equal(amt(5500)) || !s.Spent.Planned.Equal(amt(3500)) {
		t.Errorf("planned = income %s, spent %s", s.Income.Planned, s.Spent.Planned)
	}
}

func TestExpenseIncomeSummaryEmptyMonth(t *testing.T) {
	engine := NewEngine(&fakeStore{})

	s, err := engine.ExpenseIncomeSummary(context.Background(), 1, day(2024, time.June, 1), day(2024, time.June, 30))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !s.Balance.IsZero() || !s.Income.Planned.IsZero() || !s.Income.Actual.IsZero() ||
		!s.Spent.Planned.IsZero() || !s.Spent.Actual.IsZero() {
		t.Errorf("empty month summary = %+v, want all zeros", s)
	}
}

func TestCategoryPercentage(t *testing.T) {
	store := &fakeStore{
		categories: []core.Category{
			{ID: 1, UserID: 1, Name: "groceries"},
			{ID: 2, UserID: 1, Name: "transport"},
		},
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(300), Date: day(2024, time.March, 2), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(100), Date: day(2024, time.March, 3), Categories: core.CategorySet{2}},
			// tagged with both, full amount counts toward each share
			{UserID: 1, Amount: amt(100), Date: day(2024, time.March, 4), Categories: core.CategorySet{1, 2}},
			// transfer-only rows are not spending
			{UserID: 1, Amount: amt(9999), Date: day(2024, time.March, 5), Categories: core.CategorySet{core.TransferCategoryIDs[0]}},
		},
	}
	engine := NewEngine(store)

	b, err := engine.CategoryPercentage(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 31), 0)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.Month != "march" {
		t.Errorf("month = %q, want march", b.Month)
	}
	if b.Count != 3 {
		t.Errorf("count = %d, want 3", b.Count)
	}
	if !b.Total.Equal(amt(500)) {
		t.Errorf("total = %s, want 500", b.Total)
	}
	if len(b.Categories) != 2 {
		t.Fatalf("got %d shares, want 2", len(b.Categories))
	}
	if b.Categories[0].Name != "groceries" || !b.Categories[0].Value.Equal(amt(400)) {
		t.Errorf("top share = %+v", b.Categories[0])
	}
	if b.Categories[0].Percentage != 80 || b.Categories[1].Percentage != 40 {
		t.Errorf("percentages = %v, %v", b.Categories[0].Percentage, b.Categories[1].Percentage)
	}

	limited, err := engine.CategoryPercentage(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 31), 1)
	if err != nil {
		t.Fatalf("limited breakdown: %v", err)
	}
	if len(limited.Categories) != 1 || limited.Categories[0].Name != "groceries" {
		t.Errorf("limitTo=1 shares = %+v", limited.Categories)
	}
}

func TestCategoryPercentageZeroTotal(t *testing.T) {
	store := &fakeStore{
		categories: []core.Category{{ID: 1, UserID: 1, Name: "groceries"}},
		expenses: []core.Expense{
			{UserID: 1, Amount: decimal.Zero, Date: day(2024, time.March, 2), Categories: core.CategorySet{1}},
		},
	}
	engine := NewEngine(store)

	b, err := engine.CategoryPercentage(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 31), 0)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if !b.Total.IsZero() {
		t.Fatalf("total = %s", b.Total)
	}
	for _, s := range b.Categories {
		if s.Percentage != 0 {
			t.Errorf("share %q percentage = %v, want 0", s.Name, s.Percentage)
		}
	}
}

func TestDailySeries(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(50), Date: day(2024, time.March, 1), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(11), Date: day(2024, time.March, 1), Categories: core.CategorySet{core.TransferCategoryIDs[1]}},
		},
	}
	engine := NewEngine(store)

	series, err := engine.SpentSeries(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 3), BucketDaily)
	if err != nil {
		t.Fatalf("daily series: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("got %d buckets, want 3", len(series))
	}
	wantLabels := []string{"01", "02", "03"}
	wantTotals := []int64{50, 0, 0}
	for i := range series {
		if series[i].Label != wantLabels[i] || !series[i].Total.Equal(amt(wantTotals[i])) {
			t.Errorf("bucket %d = %+v, want {%s %d}", i, series[i], wantLabels[i], wantTotals[i])
		}
	}
}

func TestDailySeriesReversedRange(t *testing.T) {
	engine := NewEngine(&fakeStore{})

	_, err := engine.SpentSeries(context.Background(), 1, day(2024, time.March, 3), day(2024, time.March, 1), BucketDaily)
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWeeklySeries(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(10), Date: day(2024, time.March, 2), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(20), Date: day(2024, time.March, 8), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(30), Date: day(2024, time.March, 31), Categories: core.CategorySet{1}},
		},
	}
	engine := NewEngine(store)

	series, err := engine.SpentSeries(context.Background(), 1, day(2024, time.March, 15), day(2024, time.March, 31), BucketWeekly)
	if err != nil {
		t.Fatalf("weekly series: %v", err)
	}
	// March 2024: Fri 1 - Sun 3 close ISO week 9, then four full weeks.
	if len(series) != 5 {
		t.Fatalf("got %d buckets, want 5", len(series))
	}
	if series[0].Label != "Mar 01 - Mar 03" {
		t.Errorf("first label = %q", series[0].Label)
	}
	if series[4].Label != "Mar 25 - Mar 31" {
		t.Errorf("last label = %q", series[4].Label)
	}
	if !series[0].Total.Equal(amt(10)) || !series[1].Total.Equal(amt(20)) || !series[4].Total.Equal(amt(30)) {
		t.Errorf("totals = %v", series)
	}

	sum := decimal.Zero
	for _, p := range series {
		sum = sum.Add(p.Total)
	}
	if !sum.Equal(amt(60)) {
		t.Errorf("bucketed sum = %s, want 60", sum)
	}
}

func TestMonthlySeries(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{
			{UserID: 1, Amount: amt(100), Date: day(2024, time.January, 15), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(200), Date: day(2024, time.July, 1), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(999), Date: day(2023, time.July, 1), Categories: core.CategorySet{1}},
			{UserID: 1, Amount: amt(5), Date: day(2024, time.July, 2), Categories: core.CategorySet{core.TransferCategoryIDs[0]}},
		},
	}
	engine := NewEngine(store)

	series, err := engine.SpentSeries(context.Background(), 1, day(2024, time.March, 1), day(2024, time.March, 31), BucketMonthly)
	if err != nil {
		t.Fatalf("monthly series: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("got %d buckets, want 12", len(series))
	}
	if series[0].Label != "January" || series[11].Label != "December" {
		t.Errorf("labels = %q ... %q", series[0].Label, series[11].Label)
	}
	if !series[0].Total.Equal(amt(100)) || !series[6].Total.Equal(amt(200)) {
		t.Errorf("january = %s, july = %s", series[0].Total, series[6].Total)
	}
	if !series[2].Total.IsZero() {
		t.Errorf("march = %s, want 0", series[2].Total)
	}
}

func TestMonthlyIncomeTotals(t *testing.T) {
	store := &fakeStore{
		incomes: []core.Income{
			{UserID: 1, Amount: amt(4000), Date: day(2024, time.February, 1)},
			{UserID: 1, Amount: amt(500), Date: day(2024, time.February, 20)},
			{UserID: 1, Amount: amt(123), Date: day(2023, time.February, 1)},
		},
	}
	engine := NewEngine(store)

	months, err := engine.MonthlyIncomeTotals(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("monthly totals: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	if months[1].Month != "February" || !months[1].Total.Equal(amt(4500)) {
		t.Errorf("february = %+v", months[1])
	}
	for i, m := range months {
		if i != 1 && !m.Total.IsZero() {
			t.Errorf("%s = %s, want 0", m.Month, m.Total)
		}
	}
}

func TestParseBucket(t *testing.T) {
	for _, ok := range []string{"daily", "weekly", "monthly"} {
		if _, err := ParseBucket(ok); err != nil {
			t.Errorf("ParseBucket(%q) = %v", ok, err)
		}
	}
	if _, err := ParseBucket("hourly"); err == nil {
		t.Errorf("expected error for unknown bucket")
	}
}
