package models

import "testing"

func TestIsCancellableBeforeShipping(t *testing.T) {
	for _, status := range []string{OrderReceived, OrderAwaitingPayment, OrderPaid, OrderPreparing} {
		if !IsCancellable(status) {
			t.Fatalf("expected %q to be cancellable", status)
		}
	}
	for _, status := range []string{OrderShipping, OrderDelivered, OrderCancelled, OrderRefunded} {
		if IsCancellable(status) {
			t.Fatalf("expected %q to not be cancellable", status)
		}
	}
}

func TestIsDeletableExcludesInTransitAndDelivered(t *testing.T) {
	if IsDeletable(OrderShipping) {
		t.Fatal("expected shipping orders to not be deletable")
	}
	if IsDeletable(OrderDelivered) {
		t.Fatal("expected delivered orders to not be deletable")
	}
	if !IsDeletable(OrderCancelled) {
		t.Fatal("expected cancelled orders to be deletable")
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	if !IsValidPaymentMethod(MethodBankTransfer) {
		t.Fatal("expected bank_transfer to be a valid method")
	}
	if IsValidPaymentMethod("crypto") {
		t.Fatal("expected crypto to be rejected")
	}
}
