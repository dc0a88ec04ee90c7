package backup_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anditri/warungpos/internal/backup"
	"github.com/anditri/warungpos/internal/pos"
)

// fixtures use millisecond-truncated UTC timestamps: that is the precision
// the snapshot format keeps, so round-trips are exact.
func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func fixture() pos.Collections {
	product := pos.Product{
		ID: "p-1", Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 48,
		Supplier: "Pak Ahmad", SupplierID: "s-1", Category: "Snack",
		CreatedAt: ts("2025-03-01T08:00:00.000Z"), UpdatedAt: ts("2025-03-02T09:30:00.500Z"),
	}
	return pos.Collections{
		Products: []pos.Product{product},
		Suppliers: []pos.Supplier{{
			ID: "s-1", Name: "Pak Ahmad", Phone: "0812", Address: "Jl. Merdeka 10", Notes: "titip jual",
			CreatedAt: ts("2025-02-01T07:00:00.000Z"), UpdatedAt: ts("2025-02-01T07:00:00.000Z"),
		}},
		Transactions: []pos.Transaction{{
			ID:            "t-1",
			Items:         []pos.CartItem{{Product: product, Quantity: 2}},
			Total:         20000,
			Profit:        4000,
			PaymentMethod: pos.PaymentCash,
			CreatedAt:     ts("2025-03-02T09:30:00.500Z"),
		}},
		StockOpnames: []pos.StockOpname{{
			ID: "o-1", ProductID: "p-1", ProductName: "Chitato",
			SupplierID: "s-1", SupplierName: "Pak Ahmad",
			SystemStock: 50, ActualStock: 48, Difference: -2, Notes: "selisih rak",
			CreatedAt: ts("2025-03-03T06:15:00.250Z"),
		}},
		Deposits: []pos.SupplierDeposit{{
			ID: "d-1", SupplierID: "s-1", SupplierName: "Pak Ahmad",
			Items:      []pos.DepositItem{{ProductID: "p-1", ProductName: "Chitato", Quantity: 2, CostPrice: 8000}},
			TotalValue: 16000,
			Date:       ts("2025-03-02T09:30:00.500Z"),
			Notes:      "Penjualan otomatis - t-1",
			Status:     pos.DepositPending, SourceTransactionID: "t-1",
			CreatedAt: ts("2025-03-02T09:30:00.500Z"),
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	want := fixture()

	raw, err := backup.Serialize(want)
	require.NoError(t, err)

	got, err := backup.Deserialize(raw)
	require.NoError(t, err)

	require.Equal(t, want.Products, got.Products)
	require.Equal(t, want.Suppliers, got.Suppliers)
	require.Equal(t, want.Transactions, got.Transactions)
	require.Equal(t, want.StockOpnames, got.StockOpnames)
	require.Equal(t, want.Deposits, got.Deposits)
}

func TestRoundTrip_EmptyCollections(t *testing.T) {
	raw, err := backup.Serialize(pos.Collections{})
	require.NoError(t, err)

	got, err := backup.Deserialize(raw)
	require.NoError(t, err)
	require.Empty(t, got.Products)
	require.Empty(t, got.Suppliers)
	require.Empty(t, got.Transactions)
	require.Empty(t, got.StockOpnames)
	require.Empty(t, got.Deposits)
}

func TestDeserialize_RejectsMalformedEnvelopes(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"NotJSON", `{"version": 1,`},
		{"MissingVersion", `{"data": {}}`},
		{"VersionNotANumber", `{"version": "satu", "data": {}}`},
		{"MissingData", `{"version": 1}`},
		{"NullData", `{"version": 1, "data": null}`},
		{"DataWrongShape", `{"version": 1, "data": {"products": 5}}`},
		{"BadTimestamp", `{"version": 1, "data": {"products": [{"id": "p-1", "createdAt": "kemarin", "updatedAt": "kemarin"}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := backup.Deserialize([]byte(tc.input))
			require.Error(t, err)
		})
	}
}

func TestRestore_ClearsCart(t *testing.T) {
	s := pos.NewStore(nil)
	sup := s.AddSupplier(pos.SupplierInput{Name: "Pak Ahmad"})
	p := s.AddProduct(pos.ProductInput{Name: "Chitato", Price: 10000, CostPrice: 8000, Stock: 50,
		Supplier: sup.Name, SupplierID: sup.ID})
	s.AddToCart(p, 3)

	raw, err := backup.Serialize(fixture())
	require.NoError(t, err)
	restored, err := backup.Deserialize(raw)
	require.NoError(t, err)

	s.Restore(restored)
	require.Empty(t, s.Cart())
	require.Len(t, s.Products(), 1)
	require.Equal(t, "p-1", s.Products()[0].ID)
}
