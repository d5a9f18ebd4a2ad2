package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
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
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type transactionRequest struct {
	Type        transaction.Type   `json:"type"`
	Category    string             `json:"category"`
	Amount      decimal.Decimal    `json:"amount"`
	Date        calendar.Date      `json:"date"`
	Note        string             `json:"note"`
	ExpenseType transaction.Nature `json:"expenseType,omitempty"`
}

func (req transactionRequest) params() transaction.Params {
	return transaction.Params{
		Type:     req.Type,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
		Note:     req.Note,
		Nature:   req.ExpenseType,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.Filter{
		Query:     r.URL.Query().Get("q"),
		Timeframe: transaction.ParseTimeframe(r.URL.Query().Get("timeframe")),
	}

	txs := filter.Apply(h.store.Transactions(), calendar.FromTime(h.now()))

	respond.JSON(w, http.StatusOK, txs)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.store.AddTransaction(r.Context(), req.params())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, tx)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx := req.params().Apply(transaction.Transaction{ID: chi.URLParam(r, "id")})

	if err := h.store.UpdateTransaction(r.Context(), tx); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tx)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
