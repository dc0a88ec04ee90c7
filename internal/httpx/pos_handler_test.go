package httpx_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anditri/warungpos/internal/httpx"
	"github.com/anditri/warungpos/internal/pos"
)

func newServer(t *testing.T) (*httptest.Server, *pos.Store) {
	t.Helper()
	store := pos.NewStore(nil)
	r := httpx.NewRouter()
	(&httpx.POSHandler{Store: store, Service: "pos-api-test"}).Register(r)
	(&httpx.BackupHandler{Store: store}).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestProductEndpoints(t *testing.T) {
	srv, _ := newServer(t)

	t.Run("Create", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/products",
			`{"name": "Chitato", "price": 10000, "costPrice": 8000, "stock": 50, "category": "Snack"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var p pos.Product
		require.NoError(t, json.Unmarshal(body, &p))
		require.NotEmpty(t, p.ID)
		require.Equal(t, "Chitato", p.Name)
	})

	t.Run("Create_MissingName", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/products", `{"price": 1}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Update_UnknownID", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPut, srv.URL+"/products/nope", `{"name": "X"}`)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		srv, _ := newServer(t)
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/checkout", `{"paymentMethod": "cash"}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.Contains(t, string(body), "cart is empty")
	})

	t.Run("InvalidPaymentMethod", func(t *testing.T) {
		srv, _ := newServer(t)
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/checkout", `{"paymentMethod": "kredit"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("HappyPath", func(t *testing.T) {
		srv, store := newServer(t)
		sup := store.AddSupplier(pos.SupplierInput{Name: "Pak Ahmad"})
		p := store.AddProduct(pos.ProductInput{Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 50,
			Supplier: sup.Name, SupplierID: sup.ID})

		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/cart/items",
			`{"productId": "`+p.ID+`", "quantity": 2}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/checkout", `{"paymentMethod": "cash"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var tx pos.Transaction
		require.NoError(t, json.Unmarshal(body, &tx))
		require.Equal(t, int64(20000), tx.Total)
		require.Empty(t, store.Cart())
		require.Len(t, store.Deposits(), 1)
	})
}

func TestCartEndpoints(t *testing.T) {
	srv, store := newServer(t)
	p := store.AddProduct(pos.ProductInput{Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 50})

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/cart/items", `{"productId": "`+p.ID+`", "quantity": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/cart/items", `{"productId": "nope", "quantity": 1}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/cart/items/"+p.ID, `{"quantity": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart []pos.CartItem
	require.NoError(t, json.Unmarshal(body, &cart))
	require.Len(t, cart, 1)
	require.Equal(t, 5, cart[0].Quantity)

	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/cart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = nil
	require.NoError(t, json.Unmarshal(body, &cart))
	require.Empty(t, cart)
}

func TestBackupEndpoints(t *testing.T) {
	srv, store := newServer(t)
	sup := store.AddSupplier(pos.SupplierInput{Name: "Pak Ahmad"})
	store.AddProduct(pos.ProductInput{Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 50,
		Supplier: sup.Name, SupplierID: sup.ID})

	resp, exported := doJSON(t, http.MethodGet, srv.URL+"/backup/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), "warungpos-backup.json")

	// mulai dari toko kosong lalu pulihkan
	srv2, store2 := newServer(t)
	resp, body := doJSON(t, http.MethodPost, srv2.URL+"/backup/import", string(exported))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"restored"`)
	require.Len(t, store2.Products(), 1)
	require.Len(t, store2.Suppliers(), 1)

	resp, _ = doJSON(t, http.MethodPost, srv2.URL+"/backup/import", `{"version": "x"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
