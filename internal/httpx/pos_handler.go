package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/anditri/warungpos/internal/events"
	kafkax "github.com/anditri/warungpos/internal/kafka"
	"github.com/anditri/warungpos/internal/pos"
	"github.com/anditri/warungpos/internal/report"
)

// POSHandler exposes every store operation to the front-end. The store is the
// authority; the producer only mirrors committed sales onto the event stream.
type POSHandler struct {
	Store    *pos.Store
	Producer *kafkax.Producer
	Reports  *report.Service
	Service  string
}

func (h *POSHandler) Register(r *chi.Mux) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
		r.Get("/{id}/stats", h.productStats)
		r.Get("/{id}/transactions", h.productTransactions)
		r.Get("/{id}/opnames", h.productOpnames)
	})
	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", h.listSuppliers)
		r.Post("/", h.createSupplier)
		r.Put("/{id}", h.updateSupplier)
		r.Delete("/{id}", h.deleteSupplier)
		r.Get("/{id}/stats", h.supplierStats)
		r.Get("/{id}/products", h.supplierProducts)
		r.Get("/{id}/deposits", h.supplierDeposits)
	})
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addCartItem)
		r.Put("/items/{productID}", h.updateCartItem)
		r.Delete("/items/{productID}", h.removeCartItem)
	})
	r.Post("/checkout", h.checkout)
	r.Get("/transactions", h.listTransactions)
	r.Route("/stock-opnames", func(r chi.Router) {
		r.Get("/", h.listOpnames)
		r.Post("/", h.createOpname)
		r.Post("/reconcile", h.reconcileStock)
		r.Post("/{id}/apply", h.applyOpname)
	})
	r.Route("/deposits", func(r chi.Router) {
		r.Get("/", h.listDeposits)
		r.Post("/", h.createDeposit)
		r.Post("/{id}/settle", h.settleDeposit)
		r.Delete("/{id}", h.deleteDeposit)
	})
	r.Get("/reports/daily", h.dailyReport)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func notFoundOr500(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pos.ErrProductNotFound),
		errors.Is(err, pos.ErrSupplierNotFound),
		errors.Is(err, pos.ErrDepositNotFound),
		errors.Is(err, pos.ErrOpnameNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// ---- products ----

func (h *POSHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Products())
}

func (h *POSHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in pos.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Name == "" {
		writeErr(w, http.StatusBadRequest, "missing name")
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddProduct(in))
}

func (h *POSHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch pos.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.Store.UpdateProduct(chi.URLParam(r, "id"), patch)
	if err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *POSHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *POSHandler) productStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ProductStats(chi.URLParam(r, "id")))
}

func (h *POSHandler) productTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.TransactionsByProduct(chi.URLParam(r, "id")))
}

func (h *POSHandler) productOpnames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.StockOpnamesByProduct(chi.URLParam(r, "id")))
}

// ---- suppliers ----

func (h *POSHandler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Suppliers())
}

func (h *POSHandler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var in pos.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Name == "" {
		writeErr(w, http.StatusBadRequest, "missing name")
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddSupplier(in))
}

func (h *POSHandler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	var patch pos.SupplierPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.Store.UpdateSupplier(chi.URLParam(r, "id"), patch)
	if err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *POSHandler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSupplier(chi.URLParam(r, "id")); err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *POSHandler) supplierStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.SupplierStats(chi.URLParam(r, "id")))
}

func (h *POSHandler) supplierProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ProductsBySupplier(chi.URLParam(r, "id")))
}

func (h *POSHandler) supplierDeposits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.DepositsBySupplier(chi.URLParam(r, "id")))
}

// ---- cart & checkout ----

type cartItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *POSHandler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Cart())
}

func (h *POSHandler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, ok := h.Store.ProductByID(req.ProductID)
	if !ok {
		writeErr(w, http.StatusNotFound, pos.ErrProductNotFound.Error())
		return
	}
	h.Store.AddToCart(p, req.Quantity)
	writeJSON(w, http.StatusOK, h.Store.Cart())
}

func (h *POSHandler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.Store.UpdateCartQuantity(chi.URLParam(r, "productID"), req.Quantity)
	writeJSON(w, http.StatusOK, h.Store.Cart())
}

func (h *POSHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.Store.RemoveFromCart(chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, h.Store.Cart())
}

func (h *POSHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearCart()
	writeJSON(w, http.StatusOK, h.Store.Cart())
}

func (h *POSHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod pos.PaymentMethod `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.PaymentMethod.Valid() {
		writeErr(w, http.StatusBadRequest, "payment method must be cash or transfer")
		return
	}

	tx := h.Store.ProcessTransaction(req.PaymentMethod)
	if tx == nil {
		writeErr(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	h.publishSale(r, tx)
	writeJSON(w, http.StatusCreated, tx)
}

// publishSale mirrors the committed sale onto the event stream. Best-effort:
// the sale is already durable locally.
func (h *POSHandler) publishSale(r *http.Request, tx *pos.Transaction) {
	if h.Producer == nil {
		return
	}
	items := make([]events.SoldItem, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, events.SoldItem{
			ProductID:   it.Product.ID,
			ProductName: it.Product.Name,
			Qty:         it.Quantity,
			Price:       it.Product.Price,
			CostPrice:   it.Product.CostPrice,
		})
	}
	ev := events.Envelope{
		EventID:      uuid.NewString(),
		EventType:    events.EventTransactionCreated,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     h.Service,
		TraceID:      r.Header.Get("X-Request-Id"),
		Payload: kafkax.MustMarshal(events.TransactionCreatedPayload{
			TransactionID: tx.ID,
			Items:         items,
			Total:         tx.Total,
			Profit:        tx.Profit,
			PaymentMethod: string(tx.PaymentMethod),
			CreatedAt:     tx.CreatedAt,
		}),
	}
	h.Producer.Publish(events.PartitionKey(tx.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventTransactionCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *POSHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Transactions())
}

// ---- stock opname ----

func (h *POSHandler) listOpnames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.StockOpnames())
}

func (h *POSHandler) createOpname(w http.ResponseWriter, r *http.Request) {
	var in pos.OpnameInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddStockOpname(in))
}

func (h *POSHandler) reconcileStock(w http.ResponseWriter, r *http.Request) {
	var in pos.OpnameInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.Store.ReconcileStock(in)
	if err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *POSHandler) applyOpname(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ApplyStockOpname(chi.URLParam(r, "id")); err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// ---- deposits ----

func (h *POSHandler) listDeposits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Deposits())
}

func (h *POSHandler) createDeposit(w http.ResponseWriter, r *http.Request) {
	var in pos.DepositInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.SupplierID == "" || len(in.Items) == 0 {
		writeErr(w, http.StatusBadRequest, "missing supplier or items")
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddDeposit(in))
}

func (h *POSHandler) settleDeposit(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.SettleDeposit(chi.URLParam(r, "id"))
	if err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *POSHandler) deleteDeposit(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteDeposit(chi.URLParam(r, "id")); err != nil {
		notFoundOr500(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- reports ----

func (h *POSHandler) dailyReport(w http.ResponseWriter, r *http.Request) {
	if h.Reports == nil {
		writeErr(w, http.StatusServiceUnavailable, "reports not configured")
		return
	}
	day := r.URL.Query().Get("date")
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	sum, err := h.Reports.Daily(r.Context(), day)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
