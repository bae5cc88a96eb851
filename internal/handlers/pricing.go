package handlers

import "shopmall/internal/models"

const (
	freeShippingThreshold = 50000
	flatShippingFee       = 3000
)

// cartTotalAmount is the invariant total: sum of price*quantity over all lines.
func cartTotalAmount(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

func shippingFeeFor(itemsTotal int64) int64 {
	if itemsTotal >= freeShippingThreshold {
		return 0
	}
	return flatShippingFee
}

// buildOrderAmount computes the full breakdown from the cart total and the
// points spent. Total is itemsTotal + shippingFee - discount, always.
func buildOrderAmount(itemsTotal, pointsUsed int64) models.OrderAmount {
	fee := shippingFeeFor(itemsTotal)
	return models.OrderAmount{
		ItemsTotal:  itemsTotal,
		ShippingFee: fee,
		Discount:    pointsUsed,
		Total:       itemsTotal + fee - pointsUsed,
	}
}

// pointsEarnedFor awards 1% of the paid total, floored.
func pointsEarnedFor(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total / 100
}
