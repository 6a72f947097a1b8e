package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
	"github.com/jeamar123/budget-api/internal/storage"
)

// plannedBudget is one of the reserved income/spent rows of the month. A
// missing row is reported as a zero placeholder with a null id.
type plannedBudget struct {
	ID     *int64          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Name   string          `json:"name"`
}

// budgetItem is a budget row with its category resolved, null when dangling.
type budgetItem struct {
	core.Budget
	Category *core.Category `json:"category"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	date, err := requireDateField(r.URL.Query().Get("date"), "Date")
	if err != nil {
		s.writeError(w, r, err, "Get Budget Failed.")
		return
	}

	uid := userID(r)
	start, end := core.MonthWindow(date)
	window := storage.DateRange{Start: start, End: core.EndOfDay(end)}

	planned := make([]plannedBudget, 0, 2)
	for _, name := range []string{core.BudgetNameIncome, core.BudgetNameSpent} {
		row := plannedBudget{Amount: decimal.Zero, Date: start, Name: name}
		b, err := s.store.BudgetByName(r.Context(), uid, window, name)
		switch {
		case err == nil:
			id := b.ID
			row = plannedBudget{ID: &id, Amount: b.Amount, Date: b.Date, Name: name}
		case !core.IsNotFound(err):
			s.writeError(w, r, err, "Get Budget Failed.")
			return
		}
		planned = append(planned, row)
	}

	budgets, err := s.store.Budgets(r.Context(), uid, &window)
	if err != nil {
		s.writeError(w, r, err, "Get Budget Failed.")
		return
	}

	items := make([]budgetItem, 0, len(budgets))
	for _, b := range budgets {
		if core.IsReservedBudgetName(b.Name) {
			continue
		}
		item := budgetItem{Budget: b}
		cat, err := s.store.CategoryByID(r.Context(), uid, b.CategoryID)
		switch {
		case err == nil:
			item.Category = &cat
		case !core.IsNotFound(err):
			s.writeError(w, r, err, "Get Budget Failed.")
			return
		}
		items = append(items, item)
	}

	s.respondOK(w, map[string]any{"planned": planned, "budgets": items}, "Success")
}

type bulkBudgetRequest struct {
	Date    string           `json:"date"`
	Planned []bulkBudgetItem `json:"planned"`
	Budgets []bulkBudgetItem `json:"budgets"`
}

type bulkBudgetItem struct {
	ID         *int64          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Name       string          `json:"name"`
	Date       string          `json:"date"`
	CategoryID int64           `json:"category_id"`
}

// handleBulkBudget upserts the month's reserved planned rows and the
// per-category budget rows. Items are processed in order without rollback; a
// duplicate budget name inside the month rejects the whole request with a
// 502 envelope.
func (s *Server) handleBulkBudget(w http.ResponseWriter, r *http.Request) {
	var req bulkBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
		return
	}
	date, err := requireDateField(req.Date, "Date")
	if err != nil {
		s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
		return
	}
	if len(req.Planned) < 1 {
		s.respondError(w, http.StatusBadRequest, "Income is required")
		return
	}
	if len(req.Planned) < 2 {
		s.respondError(w, http.StatusBadRequest, "Spent is required")
		return
	}

	uid := userID(r)
	start, end := core.MonthWindow(date)
	window := storage.DateRange{Start: start, End: core.EndOfDay(end)}

	for _, item := range req.Planned {
		if item.ID != nil {
			if err := s.store.UpdateBudgetAmount(r.Context(), uid, *item.ID, item.Amount); err != nil {
				s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
				return
			}
			continue
		}
		b, err := s.newBudget(uid, item, 0)
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
			return
		}
		if err := s.store.CreateBudget(r.Context(), &b); err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
			return
		}
	}

	for _, item := range req.Budgets {
		if item.ID != nil {
			if err := s.store.UpdateBudgetPlan(r.Context(), uid, *item.ID, item.Amount, item.Name, item.CategoryID); err != nil {
				s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
				return
			}
			continue
		}
		_, err := s.store.BudgetByName(r.Context(), uid, window, item.Name)
		if err == nil {
			s.respondError(w, http.StatusBadGateway, "Duplicate Budget Category. Bulk Add and Update Budget Failed.")
			return
		}
		if !core.IsNotFound(err) {
			s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
			return
		}
		b, err := s.newBudget(uid, item, item.CategoryID)
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
			return
		}
		if err := s.store.CreateBudget(r.Context(), &b); err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Budget Failed.")
			return
		}
	}

	s.log.InfoContext(r.Context(), "budget bulk upsert",
		log.FieldOperation, log.OpBulk,
		log.FieldUserID, uid,
		"planned", len(req.Planned),
		"budgets", len(req.Budgets))
	s.respond(w, http.StatusCreated, nil, "Update Budgets Successful.", true)
}

func (s *Server) newBudget(userID int64, item bulkBudgetItem, categoryID int64) (core.Budget, error) {
	date, err := requireDateField(item.Date, "date")
	if err != nil {
		return core.Budget{}, err
	}
	b := core.Budget{
		UserID:     userID,
		Amount:     item.Amount,
		Date:       date,
		Name:       item.Name,
		CategoryID: categoryID,
	}
	return b, b.Validate()
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Delete Budget Failed.")
		return
	}
	if err := s.store.DeleteBudget(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Delete Budget Failed.")
		return
	}
	s.respondOK(w, nil, "Delete Budget Successful.")
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	date, err := requireDateField(r.URL.Query().Get("date"), "Date")
	if err != nil {
		s.writeError(w, r, err, "Budget Summary Failed.")
		return
	}

	summary, err := s.reports.BudgetSummary(r.Context(), userID(r), date)
	if err != nil {
		s.writeError(w, r, err, "Budget Summary Failed.")
		return
	}
	s.respondOK(w, map[string]any{"summary": summary}, "Success")
}
