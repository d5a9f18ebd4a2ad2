package budget

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

// CategoryHandler serves the user-defined expense categories.
type CategoryHandler struct {
	store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/icons", h.icons)
	r.Delete("/{name}", h.remove)
}

func (h *CategoryHandler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.store.Categories())
}

func (h *CategoryHandler) icons(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, budget.Icons)
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req budget.Category
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.store.AddCategory(r.Context(), req); err != nil {
		respond.Error(w, err)
		return
	}

	created, _ := budget.FindCategory(h.store.Categories(), strings.TrimSpace(req.Name))

	respond.JSON(w, http.StatusCreated, created)
}

// remove also drops the category's budget.
func (h *CategoryHandler) remove(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r, "name")
	if !ok {
		return
	}

	if err := h.store.RemoveCategory(r.Context(), name); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// nameParam returns the unescaped URL parameter. chi matches on the raw path, so a
// category such as "Food/Drinks" arrives as "Food%2FDrinks".
func nameParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, key))
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return "", false
	}

	return name, true
}
