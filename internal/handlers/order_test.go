package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopmall/internal/models"
)

func TestValidateOrderRequestRequiresShippingFields(t *testing.T) {
	req := createOrderRequest{
		Shipping: orderShippingRequest{
			RecipientName:  "Kim",
			RecipientPhone: "010-1234-5678",
			PostalCode:     "06236",
		},
		Payment: orderPaymentRequest{Method: models.MethodCard},
	}
	if msg := validateOrderRequest(req); msg == "" {
		t.Fatal("expected validation message when address is missing")
	}
}

func TestValidateOrderRequestRejectsUnknownMethod(t *testing.T) {
	req := validOrderRequest()
	req.Payment.Method = "crypto"
	if msg := validateOrderRequest(req); msg == "" {
		t.Fatal("expected validation message for unknown payment method")
	}
}

func TestValidateOrderRequestRejectsNegativePoints(t *testing.T) {
	req := validOrderRequest()
	req.PointsUsed = -1
	if msg := validateOrderRequest(req); msg == "" {
		t.Fatal("expected validation message for negative pointsUsed")
	}
}

func TestValidateOrderRequestAcceptsCompleteRequest(t *testing.T) {
	if msg := validateOrderRequest(validOrderRequest()); msg != "" {
		t.Fatalf("expected no validation message, got %q", msg)
	}
}

func TestBuildOrderBankTransferAwaitsPayment(t *testing.T) {
	req := validOrderRequest()
	req.Payment.Method = models.MethodBankTransfer

	order := buildOrder(primitive.NewObjectID(), nil, req, models.OrderAmount{}, time.Now())
	if order.Payment.Status != models.PaymentPending {
		t.Fatalf("expected payment status pending, got %q", order.Payment.Status)
	}
	if order.Status != models.OrderAwaitingPayment {
		t.Fatalf("expected order status awaiting_payment, got %q", order.Status)
	}
	if order.Payment.PaidAt != nil {
		t.Fatal("expected paidAt to be unset for bank transfer")
	}
}

func TestBuildOrderCardPaymentIsPaid(t *testing.T) {
	now := time.Now()
	order := buildOrder(primitive.NewObjectID(), nil, validOrderRequest(), models.OrderAmount{}, now)
	if order.Payment.Status != models.PaymentPaid {
		t.Fatalf("expected payment status paid, got %q", order.Payment.Status)
	}
	if order.Status != models.OrderPaid {
		t.Fatalf("expected order status paid, got %q", order.Status)
	}
	if order.Payment.PaidAt == nil || !order.Payment.PaidAt.Equal(now) {
		t.Fatal("expected paidAt to be stamped with the creation time")
	}
}

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Shipping: orderShippingRequest{
			RecipientName:  "Kim",
			RecipientPhone: "010-1234-5678",
			PostalCode:     "06236",
			Address:        "123 Teheran-ro, Gangnam-gu, Seoul",
		},
		Payment: orderPaymentRequest{
			Method:    models.MethodCard,
			PaymentID: "imp_123456789",
		},
	}
}
