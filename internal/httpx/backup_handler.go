package httpx

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anditri/warungpos/internal/backup"
	"github.com/anditri/warungpos/internal/pos"
)

// BackupHandler serves the snapshot export and validates imports. An import
// that fails validation leaves the store untouched.
type BackupHandler struct {
	Store *pos.Store
}

func (h *BackupHandler) Register(r *chi.Mux) {
	r.Get("/backup/export", h.export)
	r.Post("/backup/import", h.importBackup)
}

func (h *BackupHandler) export(w http.ResponseWriter, r *http.Request) {
	b, err := backup.Serialize(h.Store.Snapshot())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="warungpos-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *BackupHandler) importBackup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	c, err := backup.Deserialize(body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Store.Restore(c)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "restored",
		"products":     len(c.Products),
		"suppliers":    len(c.Suppliers),
		"transactions": len(c.Transactions),
		"stockOpnames": len(c.StockOpnames),
		"deposits":     len(c.Deposits),
	})
}
