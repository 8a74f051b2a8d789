package orders

import (
	"fmt"
	"time"
)

// NewOrderNumber derives the customer-facing order number from the
// submission instant, millisecond precision. The unique index on
// orders.number catches the pathological same-millisecond collision.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("ECO%d", at.UnixMilli())
}
