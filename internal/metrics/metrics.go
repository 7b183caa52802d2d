package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// OrderMetrics counts lifecycle outcomes for the order engine.
type OrderMetrics struct {
	OrdersCreated   Counter
	OrdersCancelled Counter
	OrdersDeleted   Counter
	StockRejections Counter
}

func NewOrderMetrics() *OrderMetrics {
	return &OrderMetrics{}
}

type OrderSnapshot struct {
	OrdersCreated   uint64 `json:"orders_created"`
	OrdersCancelled uint64 `json:"orders_cancelled"`
	OrdersDeleted   uint64 `json:"orders_deleted"`
	StockRejections uint64 `json:"stock_rejections"`
}

func (m *OrderMetrics) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		OrdersCreated:   m.OrdersCreated.Load(),
		OrdersCancelled: m.OrdersCancelled.Load(),
		OrdersDeleted:   m.OrdersDeleted.Load(),
		StockRejections: m.StockRejections.Load(),
	}
}
