package quote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthwise/internal/wisdom"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/random", h.random)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, wisdom.All())
}

func (h *Handler) random(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, wisdom.Random(nil))
}
