package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopmall/internal/models"
)

func TestCartTotalAmountSumsLineSubtotals(t *testing.T) {
	items := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 20000},
		{ProductID: primitive.NewObjectID(), Quantity: 1, Price: 15000},
	}
	if got := cartTotalAmount(items); got != 55000 {
		t.Fatalf("expected total 55000, got %d", got)
	}
}

func TestCartTotalAmountEmptyCartIsZero(t *testing.T) {
	if got := cartTotalAmount(nil); got != 0 {
		t.Fatalf("expected 0 for empty cart, got %d", got)
	}
}

func TestShippingFeeBoundary(t *testing.T) {
	tests := []struct {
		itemsTotal int64
		want       int64
	}{
		{49999, 3000},
		{50000, 0},
		{50001, 0},
		{0, 3000},
	}
	for _, tt := range tests {
		if got := shippingFeeFor(tt.itemsTotal); got != tt.want {
			t.Fatalf("shippingFeeFor(%d) = %d, want %d", tt.itemsTotal, got, tt.want)
		}
	}
}

func TestBuildOrderAmountBelowFreeShipping(t *testing.T) {
	items := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 20000},
	}
	amount := buildOrderAmount(cartTotalAmount(items), 0)
	if amount.ItemsTotal != 40000 {
		t.Fatalf("expected itemsTotal 40000, got %d", amount.ItemsTotal)
	}
	if amount.ShippingFee != 3000 {
		t.Fatalf("expected shippingFee 3000, got %d", amount.ShippingFee)
	}
	if amount.Total != 43000 {
		t.Fatalf("expected total 43000, got %d", amount.Total)
	}
	if got := pointsEarnedFor(amount.Total); got != 430 {
		t.Fatalf("expected 430 points, got %d", got)
	}
}

func TestBuildOrderAmountTotalFormula(t *testing.T) {
	amount := buildOrderAmount(60000, 5000)
	if amount.Total != amount.ItemsTotal+amount.ShippingFee-amount.Discount {
		t.Fatalf("total %d does not equal itemsTotal+shippingFee-discount", amount.Total)
	}
	if amount.Total != 55000 {
		t.Fatalf("expected total 55000, got %d", amount.Total)
	}
}

func TestPointsEarnedNeverNegative(t *testing.T) {
	if got := pointsEarnedFor(0); got != 0 {
		t.Fatalf("expected 0 points for zero total, got %d", got)
	}
	if got := pointsEarnedFor(-100); got != 0 {
		t.Fatalf("expected 0 points for negative total, got %d", got)
	}
}
