package backup

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/respond"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *backup.Service
	now func() time.Time
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/", h.restore)
}

type restoreResponse struct {
	Restored  bool      `json:"restored"`
	Summary   string    `json:"summary"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) download(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if _, err := h.svc.Export(&buf); err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", backup.FileName(h.now())))

	if _, err := io.Copy(w, &buf); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

// restore replaces all data with the uploaded document. Without confirm=true nothing
// is written and the document's summary is returned with 409 so the caller can ask first.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	body, err := uploadedFile(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer body.Close()

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	var doc backup.Document

	replaced, err := h.svc.Import(r.Context(), body, func(d backup.Document) bool {
		doc = d
		return confirmed
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := restoreResponse{
		Restored:  replaced,
		Summary:   doc.Summary(),
		Version:   doc.Version,
		Timestamp: doc.Timestamp,
	}

	if !replaced {
		respond.JSON(w, http.StatusConflict, resp)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}

// uploadedFile accepts either a multipart form with a file field or a raw JSON body.
func uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return http.MaxBytesReader(w, r.Body, maxUpload), nil
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file field is required")
	}

	return file, nil
}
