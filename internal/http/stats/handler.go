package stats

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type Handler struct {
	store *store.Store
	now   func() time.Time
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
}

type dashboardResponse struct {
	Summary   stats.Summary      `json:"summary"`
	Income    []stats.Slice      `json:"income"`
	Expenses  []stats.Slice      `json:"expenses"`
	Goals     stats.GoalSummary  `json:"goals"`
	Watchlist []stats.PeriodStat `json:"watchlist"`
}

func (h *Handler) dashboard(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	summary := stats.Global(snap.Transactions)
	period := calendar.FromTime(h.now()).Period()

	respond.JSON(w, http.StatusOK, dashboardResponse{
		Summary:   summary,
		Income:    stats.IncomeBreakdown(summary),
		Expenses:  stats.ExpenseBreakdown(summary),
		Goals:     stats.Goals(snap.Goals),
		Watchlist: stats.Watchlist(stats.PeriodStats(snap.Budgets, snap.Transactions, period), 3),
	})
}
