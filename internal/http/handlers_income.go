package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
)

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		s.writeError(w, r, err, "List Income Failed.")
		return
	}

	incomes, err := s.store.Incomes(r.Context(), userID(r), rng)
	if err != nil {
		s.writeError(w, r, err, "List Income Failed.")
		return
	}
	if incomes == nil {
		incomes = []core.Income{}
	}

	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	s.respondOK(w, map[string]any{"incomes": incomes, "total": total}, "Success")
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Get Income Failed.")
		return
	}
	in, err := s.store.IncomeByID(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, r, err, "Get Income Failed.")
		return
	}
	s.respondOK(w, map[string]any{"income": in}, "Success")
}

type incomeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (req incomeRequest) toIncome(userID int64) (core.Income, error) {
	date, err := requireDateField(req.Date, "date")
	if err != nil {
		return core.Income{}, err
	}
	in := core.Income{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}
	return in, in.Validate()
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Create Income Failed.")
		return
	}
	in, err := req.toIncome(userID(r))
	if err != nil {
		s.writeError(w, r, err, "Create Income Failed.")
		return
	}
	if err := s.store.CreateIncome(r.Context(), &in); err != nil {
		s.writeError(w, r, err, "Create Income Failed.")
		return
	}
	s.respondCreated(w, "Create Income Successful.")
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Update Income Failed.")
		return
	}
	if _, err := s.store.IncomeByID(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Update Income Failed.")
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Update Income Failed.")
		return
	}
	in, err := req.toIncome(userID(r))
	if err != nil {
		s.writeError(w, r, err, "Update Income Failed.")
		return
	}
	in.ID = id

	if err := s.store.UpdateIncome(r.Context(), in); err != nil {
		s.writeError(w, r, err, "Update Income Failed.")
		return
	}
	s.respondOK(w, nil, "Update Income Successful.")
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Delete Income Failed.")
		return
	}
	if err := s.store.DeleteIncome(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Delete Income Failed.")
		return
	}
	s.respondOK(w, nil, "Delete Income Successful.")
}

type bulkIncomeRequest struct {
	Transactions []bulkIncomeItem `json:"transactions"`
}

type bulkIncomeItem struct {
	ID          *int64          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// handleBulkIncome processes items independently in order. The first failure
// aborts the remaining items and prior writes stay.
func (s *Server) handleBulkIncome(w http.ResponseWriter, r *http.Request) {
	var req bulkIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Bulk Add and Update Income Failed.")
		return
	}
	if len(req.Transactions) == 0 {
		s.respondError(w, http.StatusBadRequest, "transactions is required")
		return
	}

	uid := userID(r)
	for _, item := range req.Transactions {
		in, err := incomeRequest{Amount: item.Amount, Description: item.Description, Date: item.Date}.toIncome(uid)
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Income Failed.")
			return
		}
		if item.ID != nil {
			in.ID = *item.ID
			err = s.store.UpdateIncome(r.Context(), in)
		} else {
			err = s.store.CreateIncome(r.Context(), &in)
		}
		if err != nil {
			s.writeError(w, r, err, "Bulk Add and Update Income Failed.")
			return
		}
	}

	s.log.InfoContext(r.Context(), "income bulk upsert",
		log.FieldOperation, log.OpBulk,
		log.FieldUserID, uid,
		"items", len(req.Transactions))
	s.respondOK(w, nil, "Bulk Add and Update Income Successful.")
}

func (s *Server) handleIncomeMonthlyTotal(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	months, err := s.reports.MonthlyIncomeTotals(r.Context(), userID(r), year)
	if err != nil {
		s.writeError(w, r, err, "Income Monthly Total Failed.")
		return
	}
	s.respondOK(w, map[string]any{"months": months}, "Success")
}
