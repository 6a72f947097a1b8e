// Package report computes derived summaries over stored finance records:
// budget-vs-actual lines, planned/actual month summaries, category spending
// percentages and time-bucketed spend series.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/storage"
)

// Store is the slice of the repository the engine reads from.
type Store interface {
	Budgets(ctx context.Context, userID int64, rng *storage.DateRange) ([]core.Budget, error)
	BudgetByName(ctx context.Context, userID int64, rng storage.DateRange, name string) (core.Budget, error)
	CategoryByID(ctx context.Context, userID, id int64) (core.Category, error)
	Expenses(ctx context.Context, userID int64, rng *storage.DateRange, limit int) ([]core.Expense, error)
	SumExpensesByCategory(ctx context.Context, userID, categoryID int64, rng storage.DateRange) (decimal.Decimal, error)
	Incomes(ctx context.Context, userID int64, rng *storage.DateRange) ([]core.Income, error)
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// BudgetLine is one budget-vs-actual row of the monthly summary.
type BudgetLine struct {
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// PlannedActual pairs a reserved budget amount with the recorded total.
type PlannedActual struct {
	Planned decimal.Decimal `json:"planned"`
	Actual  decimal.Decimal `json:"actual"`
}

// Summary is the month overview: balance plus planned/actual income and spend.
type Summary struct {
	Balance decimal.Decimal `json:"balance"`
	Income  PlannedActual   `json:"income"`
	Spent   PlannedActual   `json:"spent"`
}

// CategoryShare is one category's slice of the spending breakdown.
type CategoryShare struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

// Breakdown is the category percentage report for a range.
type Breakdown struct {
	Month      string          `json:"thisMonth"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"overall_total"`
	Categories []CategoryShare `json:"category_total"`
}

// SeriesPoint is one chronological bucket of a spend series.
type SeriesPoint struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotal is one month's income total.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Bucket selects the granularity of a spend series.
type Bucket string

const (
	BucketDaily   Bucket = "daily"
	BucketWeekly  Bucket = "weekly"
	BucketMonthly Bucket = "monthly"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketDaily, BucketWeekly, BucketMonthly:
		return Bucket(s), nil
	}
	return "", core.Validationf("type must be daily, weekly or monthly, got %q", s)
}

// BudgetSummary reports budget-vs-actual for every non-reserved budget of the
// month containing date. Spent counts only expenses tagged with exactly that
// budget's category. Remaining never goes below zero.
func (e *Engine) BudgetSummary(ctx context.Context, userID int64, date time.Time) ([]BudgetLine, error) {
	start, end := core.MonthWindow(date)
	window := storage.DateRange{Start: start, End: core.EndOfDay(end)}

	budgets, err := e.store.Budgets(ctx, userID, &window)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		if core.IsReservedBudgetName(b.Name) {
			continue
		}
		name := ""
		if cat, err := e.store.CategoryByID(ctx, userID, b.CategoryID); err == nil {
			name = cat.Name
		} else if !core.IsNotFound(err) {
			return nil, fmt.Errorf("resolve category %d: %w", b.CategoryID, err)
		}
		spent, err := e.store.SumExpensesByCategory(ctx, userID, b.CategoryID, window)
		if err != nil {
			return nil, fmt.Errorf("sum spend for category %d: %w", b.CategoryID, err)
		}
		remaining := b.Amount.Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		lines = append(lines, BudgetLine{
			Name:      name,
			Budget:    b.Amount,
			Spent:     spent,
			Remaining: remaining,
		})
	}
	return lines, nil
}

// ExpenseIncomeSummary reports actual income and spend over [start, end] next
// to the planned amounts of start's month. Missing pieces count as zero.
func (e *Engine) ExpenseIncomeSummary(ctx context.Context, userID int64, start, end time.Time) (*Summary, error) {
	actualRange := storage.DateRange{Start: core.DayStart(start), End: core.EndOfDay(end)}

	expenses, err := e.store.Expenses(ctx, userID, &actualRange, 0)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	spent := decimal.Zero
	for _, ex := range expenses {
		spent = spent.Add(ex.Amount)
	}

	incomes, err := e.store.Incomes(ctx, userID, &actualRange)
	if err != nil {
		return nil, fmt.Errorf("load income: %w", err)
	}
	income := decimal.Zero
	for _, in := range incomes {
		income = income.Add(in.Amount)
	}

	monthStart, monthEnd := core.MonthWindow(start)
	monthWindow := storage.DateRange{Start: monthStart, End: core.EndOfDay(monthEnd)}

	plannedIncome, err := e.plannedAmount(ctx, userID, monthWindow, core.BudgetNameIncome)
	if err != nil {
		return nil, err
	}
	plannedSpent, err := e.plannedAmount(ctx, userID, monthWindow, core.BudgetNameSpent)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Balance: income.Sub(spent),
		Income:  PlannedActual{Planned: plannedIncome, Actual: income},
		Spent:   PlannedActual{Planned: plannedSpent, Actual: spent},
	}, nil
}

func (e *Engine) plannedAmount(ctx context.Context, userID int64, window storage.DateRange, name string) (decimal.Decimal, error) {
	b, err := e.store.BudgetByName(ctx, userID, window, name)
	if err != nil {
		if core.IsNotFound(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("load %s budget: %w", name, err)
	}
	return b.Amount, nil
}

// CategoryPercentage breaks spending in [start, end] down by category.
// Expenses tagged only with a transfer category are not spending and are
// skipped; dangling category ids contribute to the grand total but to no
// named share. With zero total every percentage is zero.
func (e *Engine) CategoryPercentage(ctx context.Context, userID int64, start, end time.Time, limitTo int) (*Breakdown, error) {
	rng := storage.DateRange{Start: core.DayStart(start), End: core.EndOfDay(end)}

	expenses, err := e.store.Expenses(ctx, userID, &rng, 0)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	total := decimal.Zero
	count := 0
	values := make(map[string]decimal.Decimal)
	names := make(map[int64]string)

	for _, ex := range expenses {
		if ex.Categories.IsTransferOnly() {
			continue
		}
		count++
		total = total.Add(ex.Amount)
		for _, id := range ex.Categories {
			name, ok := names[id]
			if !ok {
				cat, err := e.store.CategoryByID(ctx, userID, id)
				switch {
				case err == nil:
					name = cat.Name
				case core.IsNotFound(err):
					name = ""
				default:
					return nil, fmt.Errorf("resolve category %d: %w", id, err)
				}
				names[id] = name
			}
			if name == "" {
				continue
			}
			values[name] = values[name].Add(ex.Amount)
		}
	}

	shares := make([]CategoryShare, 0, len(values))
	for name, value := range values {
		pct := 0.0
		if !total.IsZero() {
			pct, _ = value.Mul(decimal.NewFromInt(100)).Div(total).Float64()
		}
		shares = append(shares, CategoryShare{Name: name, Value: value, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Value.Equal(shares[j].Value) {
			return shares[i].Value.GreaterThan(shares[j].Value)
		}
		return shares[i].Name < shares[j].Name
	})
	if limitTo > 0 && len(shares) > limitTo {
		shares = shares[:limitTo]
	}

	return &Breakdown{
		Month:      strings.ToLower(start.Month().String()),
		Count:      count,
		Total:      total,
		Categories: shares,
	}, nil
}

// SpentSeries buckets non-transfer spending into a chronological, zero-filled
// series. Daily covers [start, end], weekly covers start's month grouped by
// ISO week, monthly covers the twelve months of start's year.
func (e *Engine) SpentSeries(ctx context.Context, userID int64, start, end time.Time, bucket Bucket) ([]SeriesPoint, error) {
	switch bucket {
	case BucketDaily:
		return e.dailySeries(ctx, userID, core.DayStart(start), core.DayStart(end))
	case BucketWeekly:
		return e.weeklySeries(ctx, userID, start)
	case BucketMonthly:
		return e.monthlySeries(ctx, userID, start)
	}
	return nil, core.Validationf("type must be daily, weekly or monthly, got %q", string(bucket))
}

func (e *Engine) dailySeries(ctx context.Context, userID int64, start, end time.Time) ([]SeriesPoint, error) {
	if end.Before(start) {
		return nil, core.Validationf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	totals, err := e.spendByDay(ctx, userID, storage.DateRange{Start: start, End: core.EndOfDay(end)})
	if err != nil {
		return nil, err
	}

	var series []SeriesPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, SeriesPoint{
			Label: fmt.Sprintf("%02d", d.Day()),
			Total: totals[dayKey(d)],
		})
	}
	return series, nil
}

func (e *Engine) weeklySeries(ctx context.Context, userID int64, date time.Time) ([]SeriesPoint, error) {
	start, end := core.MonthWindow(date)

	totals, err := e.spendByDay(ctx, userID, storage.DateRange{Start: start, End: core.EndOfDay(end)})
	if err != nil {
		return nil, err
	}

	// Days of a month are consecutive, so a change of ISO week closes the
	// current group.
	var series []SeriesPoint
	groupStart := start
	_, week := start.ISOWeek()
	sum := decimal.Zero
	flush := func(last time.Time) {
		series = append(series, SeriesPoint{
			Label: groupStart.Format("Jan 02") + " - " + last.Format("Jan 02"),
			Total: sum,
		})
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, w := d.ISOWeek(); w != week {
			flush(d.AddDate(0, 0, -1))
			groupStart, week = d, w
			sum = decimal.Zero
		}
		sum = sum.Add(totals[dayKey(d)])
	}
	flush(end)
	return series, nil
}

func (e *Engine) monthlySeries(ctx context.Context, userID int64, date time.Time) ([]SeriesPoint, error) {
	start, end := core.YearWindow(date)

	expenses, err := e.store.Expenses(ctx, userID, &storage.DateRange{Start: start, End: core.EndOfDay(end)}, 0)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	totals := make([]decimal.Decimal, 12)
	for _, ex := range expenses {
		if ex.Categories.IsTransferOnly() {
			continue
		}
		m := ex.Date.Month() - 1
		totals[m] = totals[m].Add(ex.Amount)
	}

	series := make([]SeriesPoint, 12)
	for i := range series {
		series[i] = SeriesPoint{Label: time.Month(i + 1).String(), Total: totals[i]}
	}
	return series, nil
}

// MonthlyIncomeTotals sums income per calendar month of the year, zero-filled.
func (e *Engine) MonthlyIncomeTotals(ctx context.Context, userID int64, year int) ([]MonthTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	incomes, err := e.store.Incomes(ctx, userID, &storage.DateRange{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("load income: %w", err)
	}

	totals := make([]decimal.Decimal, 12)
	for _, in := range incomes {
		m := in.Date.Month() - 1
		totals[m] = totals[m].Add(in.Amount)
	}

	months := make([]MonthTotal, 12)
	for i := range months {
		months[i] = MonthTotal{Month: time.Month(i + 1).String(), Total: totals[i]}
	}
	return months, nil
}

func (e *Engine) spendByDay(ctx context.Context, userID int64, rng storage.DateRange) (map[string]decimal.Decimal, error) {
	expenses, err := e.store.Expenses(ctx, userID, &rng, 0)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	totals := make(map[string]decimal.Decimal)
	for _, ex := range expenses {
		if ex.Categories.IsTransferOnly() {
			continue
		}
		k := dayKey(ex.Date)
		totals[k] = totals[k].Add(ex.Amount)
	}
	return totals, nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
