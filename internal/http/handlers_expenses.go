package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
	"github.com/jeamar123/budget-api/internal/report"
)

// expenseItem is an expense with its category references resolved to full
// records. Dangling ids are dropped from the embedded list.
type expenseItem struct {
	core.Expense
	ResolvedCategories []core.Category `json:"categories"`
}

func (s *Server) resolveExpense(r *http.Request, e core.Expense) (expenseItem, error) {
	item := expenseItem{Expense: e, ResolvedCategories: []core.Category{}}
	for _, id := range e.Categories {
		cat, err := s.store.CategoryByID(r.Context(), e.UserID, id)
		if err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return expenseItem{}, err
		}
		item.ResolvedCategories = append(item.ResolvedCategories, cat)
	}
	return item, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		s.writeError(w, r, err, "List Expenses Failed.")
		return
	}

	expenses, err := s.store.Expenses(r.Context(), userID(r), rng, queryInt(r, "limitTo"))
	if err != nil {
		s.writeError(w, r, err, "List Expenses Failed.")
		return
	}

	total := decimal.Zero
	items := make([]expenseItem, 0, len(expenses))
	for _, e := range expenses {
		item, err := s.resolveExpense(r, e)
		if err != nil {
			s.writeError(w, r, err, "List Expenses Failed.")
			return
		}
		items = append(items, item)
		total = total.Add(e.Amount)
	}
	s.respondOK(w, map[string]any{"expenses": items, "total": total}, "Success")
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Get Expenses Failed.")
		return
	}
	e, err := s.store.ExpenseByID(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, r, err, "Get Expenses Failed.")
		return
	}
	item, err := s.resolveExpense(r, e)
	if err != nil {
		s.writeError(w, r, err, "Get Expenses Failed.")
		return
	}
	s.respondOK(w, map[string]any{"expenses": item}, "Success")
}

type expenseRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	CategoryIDs core.CategorySet `json:"category_ids"`
}

func (req expenseRequest) toExpense(userID int64) (core.Expense, error) {
	date, err := requireDateField(req.Date, "date")
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Categories:  req.CategoryIDs,
	}
	return e, e.Validate()
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Create Expenses Failed.")
		return
	}
	e, err := req.toExpense(userID(r))
	if err != nil {
		s.writeError(w, r, err, "Create Expenses Failed.")
		return
	}
	if err := s.store.CreateExpense(r.Context(), &e); err != nil {
		s.writeError(w, r, err, "Create Expenses Failed.")
		return
	}
	s.respondCreated(w, "Create Expenses Successful.")
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Update Expenses Failed.")
		return
	}
	if _, err := s.store.ExpenseByID(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Update Expenses Failed.")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Update Expenses Failed.")
		return
	}
	e, err := req.toExpense(userID(r))
	if err != nil {
		s.writeError(w, r, err, "Update Expenses Failed.")
		return
	}
	e.ID = id

	if err := s.store.UpdateExpense(r.Context(), e); err != nil {
		s.writeError(w, r, err, "Update Expenses Failed.")
		return
	}
	s.respondOK(w, nil, "Update Expenses Successful.")
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Delete Expenses Failed.")
		return
	}
	if err := s.store.DeleteExpense(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Delete Expenses Failed.")
		return
	}
	s.respondOK(w, nil, "Delete Expenses Successful.")
}

type bulkExpenseRequest struct {
	Transactions []bulkExpenseItem `json:"transactions"`
}

type bulkExpenseItem struct {
	ID          *int64           `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	CategoryIDs core.CategorySet `json:"category_ids"`
}

// handleBulkExpenses processes items independently in order. The first
// failure aborts the remaining items and prior writes stay.
func (s *Server) handleBulkExpenses(w http.ResponseWriter, r *http.Request) {
	var req bulkExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Bulk Add and Update Transactions Failed.")
		return
	}
	if len(req.Transactions) == 0 {
		s.respondError(w, http.StatusBadRequest, "transactions is required")
		return
	}

	uid := userID(r)
	for _, item := range req.Transactions {
		e, err := expenseRequest{
			Amount:      item.Amount,
			Description: item.Description,
			Date:        item.Date,
			CategoryIDs: item.CategoryIDs,
		}.toExpense(uid)
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Transactions Failed.")
			return
		}
		if item.ID != nil {
			e.ID = *item.ID
			err = s.store.UpdateExpense(r.Context(), e)
		} else {
			err = s.store.CreateExpense(r.Context(), &e)
		}
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Transactions Failed.")
			return
		}
	}

	s.log.InfoContext(r.Context(), "expenses bulk upsert",
		log.FieldOperation, log.OpBulk,
		log.FieldUserID, uid,
		"items", len(req.Transactions))
	s.respondOK(w, nil, "Bulk Add and Update Transactions Successful.")
}

func (s *Server) handleExpensesSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := requireRangeQuery(r)
	if err != nil {
		s.writeError(w, r, err, "Expenses Summary Failed.")
		return
	}

	summary, err := s.reports.ExpenseIncomeSummary(r.Context(), userID(r), rng.Start, rng.End)
	if err != nil {
		s.writeError(w, r, err, "Expenses Summary Failed.")
		return
	}
	s.respondOK(w, map[string]any{"summary": summary}, "Success")
}

func (s *Server) handleExpensesTotalSpent(w http.ResponseWriter, r *http.Request) {
	rng, err := requireRangeQuery(r)
	if err != nil {
		s.writeError(w, r, err, "Expenses Total Spent Failed.")
		return
	}
	bucketName := r.URL.Query().Get("type")
	if bucketName == "" {
		s.respondError(w, http.StatusBadRequest, "type is required.")
		return
	}
	bucket, err := report.ParseBucket(bucketName)
	if err != nil {
		s.writeError(w, r, err, "Expenses Total Spent Failed.")
		return
	}

	series, err := s.reports.SpentSeries(r.Context(), userID(r), rng.Start, rng.End, bucket)
	if err != nil {
		s.writeError(w, r, err, "Expenses Total Spent Failed.")
		return
	}
	s.respondOK(w, map[string]any{"spent": series}, "Success")
}
