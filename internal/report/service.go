// Package report is the downstream side of the sale event stream: it folds
// TransactionCreated events into per-day sales summaries kept in Redis.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/anditri/warungpos/internal/events"
	kafkax "github.com/anditri/warungpos/internal/kafka"
	"github.com/anditri/warungpos/internal/redisx"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// DailySummary mirrors the dashboard's per-day aggregate.
type DailySummary struct {
	Date              string       `json:"date"`
	TotalSales        int64        `json:"totalSales"`
	TotalTransactions int64        `json:"totalTransactions"`
	TotalProfit       int64        `json:"totalProfit"`
	TopProducts       []TopProduct `json:"topProducts"`
}

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// HandleTransactionCreated dipasang sebagai handler consumer.
func (s *Service) HandleTransactionCreated(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventTransactionCreated {
		return nil
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[events.TransactionCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	day := p.CreatedAt.UTC().Format("2006-01-02")
	sumKey := fmt.Sprintf(redisx.KeyDailySummary, day)
	prodKey := fmt.Sprintf(redisx.KeyDailyProducts, day)

	pipe := s.Redis.TxPipeline()
	pipe.HIncrBy(ctx, sumKey, "total_sales", p.Total)
	pipe.HIncrBy(ctx, sumKey, "total_transactions", 1)
	pipe.HIncrBy(ctx, sumKey, "total_profit", p.Profit)
	for _, it := range p.Items {
		pipe.HIncrBy(ctx, prodKey, it.ProductName, int64(it.Qty))
	}
	pipe.Expire(ctx, sumKey, redisx.TTLSummary)
	pipe.Expire(ctx, prodKey, redisx.TTLSummary)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update summary %s: %w", day, err)
	}
	return nil
}

// Daily reads one day's summary back. Used by the API's reports endpoint.
func (s *Service) Daily(ctx context.Context, day string) (DailySummary, error) {
	sumKey := fmt.Sprintf(redisx.KeyDailySummary, day)
	prodKey := fmt.Sprintf(redisx.KeyDailyProducts, day)

	out := DailySummary{Date: day}
	fields, err := s.Redis.HGetAll(ctx, sumKey).Result()
	if err != nil {
		return out, err
	}
	out.TotalSales, _ = strconv.ParseInt(fields["total_sales"], 10, 64)
	out.TotalTransactions, _ = strconv.ParseInt(fields["total_transactions"], 10, 64)
	out.TotalProfit, _ = strconv.ParseInt(fields["total_profit"], 10, 64)

	products, err := s.Redis.HGetAll(ctx, prodKey).Result()
	if err != nil {
		return out, err
	}
	for name, qty := range products {
		n, _ := strconv.ParseInt(qty, 10, 64)
		out.TopProducts = append(out.TopProducts, TopProduct{Name: name, Quantity: n})
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		if out.TopProducts[i].Quantity != out.TopProducts[j].Quantity {
			return out.TopProducts[i].Quantity > out.TopProducts[j].Quantity
		}
		return out.TopProducts[i].Name < out.TopProducts[j].Name
	})
	if len(out.TopProducts) > 5 {
		out.TopProducts = out.TopProducts[:5]
	}
	return out, nil
}
