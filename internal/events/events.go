package events

import (
	"encoding/json"
	"time"
)

const (
	EventTransactionCreated = "TransactionCreated"
	EventDepositCreated     = "DepositCreated"
	EventDepositSettled     = "DepositSettled"
)

const (
	TopicTransactionCreated = "pos.transaction.created"
	TopicDepositCreated     = "pos.deposit.created"
	TopicDepositSettled     = "pos.deposit.settled"
)

// PartitionKey = transaction id, supaya event untuk satu transaksi terurut.
func PartitionKey(id string) []byte { return []byte(id) }

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	TraceID      string          `json:"trace_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

// ---- payload per event ----

type SoldItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
	Price       int64  `json:"price"`
	CostPrice   int64  `json:"cost_price"`
}

type TransactionCreatedPayload struct {
	TransactionID string     `json:"transaction_id"`
	Items         []SoldItem `json:"items"`
	Total         int64      `json:"total"`
	Profit        int64      `json:"profit"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
}

type DepositCreatedPayload struct {
	DepositID           string `json:"deposit_id"`
	SupplierID          string `json:"supplier_id"`
	TotalValue          int64  `json:"total_value"`
	SourceTransactionID string `json:"source_transaction_id,omitempty"`
}

type DepositSettledPayload struct {
	DepositID  string `json:"deposit_id"`
	SupplierID string `json:"supplier_id"`
}
