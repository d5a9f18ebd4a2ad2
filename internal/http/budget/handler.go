package budget

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
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
	r.Get("/", h.list)
	r.Put("/", h.set)
	r.Get("/periods", h.period)
	r.Delete("/{category}", h.remove)
}

type budgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Rollover bool            `json:"rollover"`
}

type periodStatResponse struct {
	stats.PeriodStat
	Exceeded bool `json:"exceeded"`
	Warning  bool `json:"warning"`
}

type periodResponse struct {
	Year      int                  `json:"year"`
	Month     time.Month           `json:"month"`
	Label     string               `json:"label"`
	Budgets   []periodStatResponse `json:"budgets"`
	Share     []stats.Share        `json:"share"`
	Watchlist []stats.PeriodStat   `json:"watchlist"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.store.Budgets())
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.store.SetBudget(r.Context(), budget.Params{
		Category: req.Category,
		Limit:    req.Limit,
		Rollover: req.Rollover,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, b)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	category, ok := nameParam(w, r, "category")
	if !ok {
		return
	}

	if err := h.store.RemoveBudget(r.Context(), category); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, calendar.FromTime(h.now()).Period())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	periodStats := stats.PeriodStats(h.store.Budgets(), h.store.Transactions(), period)

	resp := periodResponse{
		Year:      period.Year,
		Month:     period.Month,
		Label:     period.String(),
		Budgets:   make([]periodStatResponse, len(periodStats)),
		Share:     stats.SpendingShare(periodStats),
		Watchlist: stats.Watchlist(periodStats, 3),
	}

	for i, s := range periodStats {
		resp.Budgets[i] = periodStatResponse{PeriodStat: s, Exceeded: s.Exceeded(), Warning: s.Warning()}
	}

	respond.JSON(w, http.StatusOK, resp)
}

// parsePeriod reads the year and month query parameters. Missing values fall back to def.
func parsePeriod(r *http.Request, def calendar.Period) (calendar.Period, error) {
	period := def
	q := r.URL.Query()

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return calendar.Period{}, fmt.Errorf("invalid year %q", v)
		}

		period.Year = year
	}

	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return calendar.Period{}, fmt.Errorf("invalid month %q", v)
		}

		period.Month = time.Month(month)
	}

	if !period.Valid() {
		return calendar.Period{}, fmt.Errorf("month must be between 1 and 12")
	}

	return period, nil
}
