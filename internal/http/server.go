// Package http exposes the JSON API: authentication, record CRUD and the
// aggregated report endpoints. Every response is wrapped in the common
// {..., "message": string, "status": bool} envelope.
package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/auth"
	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
	"github.com/jeamar123/budget-api/internal/report"
	"github.com/jeamar123/budget-api/internal/storage"
)

// Store is the persistence surface the handlers work against.
type Store interface {
	CreateUser(ctx context.Context, u *core.User) error
	UserByID(ctx context.Context, id int64) (core.User, error)
	UserByEmail(ctx context.Context, email string) (core.User, error)
	Users(ctx context.Context, search string) ([]core.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateUser(ctx context.Context, u core.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c *core.Category) error
	CategoryByID(ctx context.Context, userID, id int64) (core.Category, error)
	Categories(ctx context.Context, userID int64, search string) ([]core.Category, error)
	CategoryNameExists(ctx context.Context, userID int64, name string, excludeID int64) (bool, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, userID, id int64) error

	CreateIncome(ctx context.Context, in *core.Income) error
	IncomeByID(ctx context.Context, userID, id int64) (core.Income, error)
	Incomes(ctx context.Context, userID int64, rng *storage.DateRange) ([]core.Income, error)
	UpdateIncome(ctx context.Context, in core.Income) error
	DeleteIncome(ctx context.Context, userID, id int64) error

	CreateExpense(ctx context.Context, e *core.Expense) error
	ExpenseByID(ctx context.Context, userID, id int64) (core.Expense, error)
	Expenses(ctx context.Context, userID int64, rng *storage.DateRange, limit int) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, userID, id int64) error

	CreateBudget(ctx context.Context, b *core.Budget) error
	BudgetByID(ctx context.Context, userID, id int64) (core.Budget, error)
	Budgets(ctx context.Context, userID int64, rng *storage.DateRange) ([]core.Budget, error)
	BudgetByName(ctx context.Context, userID int64, rng storage.DateRange, name string) (core.Budget, error)
	UpdateBudgetAmount(ctx context.Context, userID, id int64, amount decimal.Decimal) error
	UpdateBudgetPlan(ctx context.Context, userID, id int64, amount decimal.Decimal, name string, categoryID int64) error
	DeleteBudget(ctx context.Context, userID, id int64) error
}

type Server struct {
	http.Server

	store       Store
	auth        *auth.Service
	reports     *report.Engine
	rateLimiter *rateLimiter
	log         *log.Logger

	shutdownOnce sync.Once
}

// NewServer wires the routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store Store, authSvc *auth.Service, reports *report.Engine, rateLimitPerMinute int, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:       store,
		auth:        authSvc,
		reports:     reports,
		rateLimiter: newRateLimiter(rateLimitPerMinute),
		log:         logger.WithComponent(log.ComponentHTTP),
	}
	s.Server.Addr = addr
	s.Server.Handler = s.withMiddleware(mux)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/users", s.requireAuth(s.handleListUsers))
	mux.HandleFunc("GET /api/user", s.requireAuth(s.handleGetSelf))
	mux.HandleFunc("GET /api/user/{id}", s.requireAuth(s.handleGetUser))
	mux.HandleFunc("PUT /api/user/{id}", s.requireAuth(s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/user/{id}", s.requireAuth(s.handleDeleteUser))

	mux.HandleFunc("GET /api/category", s.requireAuth(s.handleListCategories))
	mux.HandleFunc("GET /api/category/{id}", s.requireAuth(s.handleGetCategory))
	mux.HandleFunc("POST /api/category", s.requireAuth(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/category/{id}", s.requireAuth(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/category/{id}", s.requireAuth(s.handleDeleteCategory))
	mux.HandleFunc("GET /api/category-percentage", s.requireAuth(s.handleCategoryPercentage))

	mux.HandleFunc("GET /api/income", s.requireAuth(s.handleListIncome))
	mux.HandleFunc("GET /api/income/{id}", s.requireAuth(s.handleGetIncome))
	mux.HandleFunc("POST /api/income", s.requireAuth(s.handleCreateIncome))
	mux.HandleFunc("PUT /api/income/{id}", s.requireAuth(s.handleUpdateIncome))
	mux.HandleFunc("DELETE /api/income/{id}", s.requireAuth(s.handleDeleteIncome))
	mux.HandleFunc("POST /api/income-bulk-add-update", s.requireAuth(s.handleBulkIncome))
	mux.HandleFunc("GET /api/income-monthly-total", s.requireAuth(s.handleIncomeMonthlyTotal))

	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("GET /api/expenses/{id}", s.requireAuth(s.handleGetExpense))
	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.requireAuth(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.requireAuth(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/expenses-bulk-add-update", s.requireAuth(s.handleBulkExpenses))
	mux.HandleFunc("GET /api/expenses-summary", s.requireAuth(s.handleExpensesSummary))
	mux.HandleFunc("GET /api/expenses-total-spent", s.requireAuth(s.handleExpensesTotalSpent))

	mux.HandleFunc("GET /api/budget", s.requireAuth(s.handleGetBudget))
	mux.HandleFunc("POST /api/budget-bulk-update", s.requireAuth(s.handleBulkBudget))
	mux.HandleFunc("DELETE /api/budget/{id}", s.requireAuth(s.handleDeleteBudget))
	mux.HandleFunc("GET /api/budget-summary", s.requireAuth(s.handleBudgetSummary))

	return s
}

// Shutdown stops the listener and the rate limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
