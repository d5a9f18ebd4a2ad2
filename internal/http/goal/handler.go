package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
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
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Post("/{id}/contributions", h.contribute)
}

type goalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      calendar.Date   `json:"deadline"`
	Icon          string          `json:"icon"`
}

type contributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type goalResponse struct {
	goal.Goal
	Progress  int64           `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	DaysLeft  int             `json:"daysLeft"`
	Completed bool            `json:"completed"`
}

func (h *Handler) toResponse(g goal.Goal) goalResponse {
	return goalResponse{
		Goal:      g,
		Progress:  stats.GoalProgress(g),
		Remaining: g.Remaining(),
		DaysLeft:  g.DaysLeft(calendar.FromTime(h.now())),
		Completed: g.Completed(),
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	goals := h.store.Goals()

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = h.toResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	g, err := h.store.AddGoal(r.Context(), goal.Params{
		Name:     req.Name,
		Target:   req.TargetAmount,
		Current:  req.CurrentAmount,
		Deadline: req.Deadline,
		Icon:     req.Icon,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.toResponse(g))
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	g, err := h.store.Contribute(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(g))
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, stats.Goals(h.store.Goals()))
}
