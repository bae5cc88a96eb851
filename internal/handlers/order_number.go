package handlers

import (
	"fmt"
	"time"
)

// orderDateKey scopes the order sequence to a calendar day.
func orderDateKey(t time.Time) string {
	return t.Format("20060102")
}

// formatOrderNumber renders ORD-YYYYMMDD-NNN. The sequence keeps growing past
// 999; the padding only guarantees a minimum width.
func formatOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%s-%03d", orderDateKey(t), seq)
}
