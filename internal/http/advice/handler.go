package advice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type Handler struct {
	store   *store.Store
	advisor *advisor.Service
}

func NewHandler(s *store.Store, a *advisor.Service) *Handler {
	return &Handler{store: s, advisor: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.advise)
}

// advise always answers 200. A provider failure comes back as the fallback advice.
func (h *Handler) advise(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	respond.JSON(w, http.StatusOK, h.advisor.Advise(r.Context(), stats.Global(snap.Transactions), snap.Goals))
}
