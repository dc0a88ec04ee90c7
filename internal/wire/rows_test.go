package wire_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anditri/warungpos/internal/pos"
	"github.com/anditri/warungpos/internal/wire"
)

func TestProductRow(t *testing.T) {
	ts := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("RoundTrip", func(t *testing.T) {
		p := pos.Product{
			ID: "p-1", Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 48,
			Supplier: "Pak Ahmad", SupplierID: "s-1", Category: "Snack",
			CreatedAt: ts, UpdatedAt: ts,
		}
		row := wire.FromProduct(p)
		require.NotNil(t, row.SupplierID)
		require.Equal(t, "s-1", *row.SupplierID)

		got := wire.ToProduct(row, "Pak Ahmad")
		require.Equal(t, p, got)
	})

	t.Run("OrphanedProduct_NullSupplierColumn", func(t *testing.T) {
		p := pos.Product{ID: "p-2", Name: "Es Teh", Supplier: "Pak Ahmad", CreatedAt: ts, UpdatedAt: ts}
		row := wire.FromProduct(p)
		require.Nil(t, row.SupplierID)

		got := wire.ToProduct(row, "Pak Ahmad")
		require.Empty(t, got.SupplierID)
		require.Equal(t, "Pak Ahmad", got.Supplier)
	})
}

func TestTransactionRow(t *testing.T) {
	ts := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	tx := pos.Transaction{
		ID: "t-1",
		Items: []pos.CartItem{{
			Product:  pos.Product{ID: "p-1", Name: "Chitato", Price: 10000, CostPrice: 8000, CreatedAt: ts, UpdatedAt: ts},
			Quantity: 2,
		}},
		Total: 20000, Profit: 4000,
		PaymentMethod: pos.PaymentTransfer, CreatedAt: ts,
	}

	row, err := wire.FromTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, "transfer", row.PaymentMethod)

	got, err := wire.ToTransaction(row)
	require.NoError(t, err)
	require.Equal(t, tx, got)
}

func TestDepositRow(t *testing.T) {
	ts := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	d := pos.SupplierDeposit{
		ID: "d-1", SupplierID: "s-1", SupplierName: "Pak Ahmad",
		Items:      []pos.DepositItem{{ProductID: "p-1", ProductName: "Chitato", Quantity: 2, CostPrice: 8000}},
		TotalValue: 16000, Date: ts, Notes: "Penjualan otomatis - t-1",
		Status: pos.DepositPending, SourceTransactionID: "t-1", CreatedAt: ts,
	}

	row, err := wire.FromDeposit(d)
	require.NoError(t, err)
	require.NotNil(t, row.SourceTransactionID)
	require.Equal(t, "t-1", *row.SourceTransactionID)

	got, err := wire.ToDeposit(row)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestOpnameRow(t *testing.T) {
	ts := time.Date(2025, 3, 3, 6, 15, 0, 0, time.UTC)
	o := pos.StockOpname{
		ID: "o-1", ProductID: "p-1", ProductName: "Chitato",
		SupplierID: "s-1", SupplierName: "Pak Ahmad",
		SystemStock: 50, ActualStock: 48, Difference: -2, Notes: "selisih rak", CreatedAt: ts,
	}

	row := wire.FromOpname(o)
	got := wire.ToOpname(row)
	require.Equal(t, o, got)
}

func TestDecodeCartItems(t *testing.T) {
	t.Run("NullColumn", func(t *testing.T) {
		items, err := wire.DecodeCartItems(json.RawMessage("null"))
		require.NoError(t, err)
		require.Nil(t, items)
	})

	t.Run("NotAnArray", func(t *testing.T) {
		_, err := wire.DecodeCartItems(json.RawMessage(`{"oops": true}`))
		require.Error(t, err)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		_, err := wire.DecodeCartItems(json.RawMessage(`[{"product": {"name": "Chitato"}, "quantity": 2}]`))
		require.ErrorContains(t, err, "missing product id")
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		_, err := wire.DecodeCartItems(json.RawMessage(`[{"product": {"id": "p-1"}, "quantity": 0}]`))
		require.ErrorContains(t, err, "quantity must be positive")
	})
}

func TestDecodeDepositItems(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		items, err := wire.DecodeDepositItems(json.RawMessage(`[{"productId": "p-1", "productName": "Chitato", "quantity": 2, "costPrice": 8000}]`))
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "p-1", items[0].ProductID)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		_, err := wire.DecodeDepositItems(json.RawMessage(`[{"productName": "Chitato", "quantity": 2}]`))
		require.ErrorContains(t, err, "missing product id")
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		_, err := wire.DecodeDepositItems(json.RawMessage(`[{"productId": "p-1", "quantity": -1}]`))
		require.ErrorContains(t, err, "quantity must be positive")
	})
}
