package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newGateway(t *testing.T, paymentStatus string, amount int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/getToken", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"","response":{"access_token":"test-token"}}`))
	})
	mux.HandleFunc("/payments/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":-1,"message":"unauthorized"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"","response":{"imp_uid":"imp_123","merchant_uid":"ORD-20260831-001","status":"` + paymentStatus + `","amount":` + strconv.FormatInt(amount, 10) + `}}`))
	})
	return httptest.NewServer(mux)
}

func TestVerifyReturnsPaidPayment(t *testing.T) {
	srv := newGateway(t, "paid", 43000)
	defer srv.Close()

	client := NewClient(srv.URL, "key", "secret")
	payment, err := client.Verify(context.Background(), "imp_123")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if payment.Status != StatusPaid {
		t.Fatalf("expected status paid, got %q", payment.Status)
	}
	if payment.Amount != 43000 {
		t.Fatalf("expected amount 43000, got %d", payment.Amount)
	}
	if payment.PaymentID != "imp_123" {
		t.Fatalf("expected imp_uid imp_123, got %q", payment.PaymentID)
	}
}

func TestVerifyPassesThroughNonPaidStatus(t *testing.T) {
	srv := newGateway(t, "failed", 43000)
	defer srv.Close()

	client := NewClient(srv.URL, "key", "secret")
	payment, err := client.Verify(context.Background(), "imp_123")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if payment.Status == StatusPaid {
		t.Fatal("expected non-paid status to pass through for the caller to reject")
	}
}

func TestVerifyTokenRejectionIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":-1,"message":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad", "creds")
	_, err := client.Verify(context.Background(), "imp_123")
	if err == nil {
		t.Fatal("expected error for rejected token exchange")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid api key" {
		t.Fatalf("expected gateway message to be carried, got %q", apiErr.Message)
	}
}

func TestVerifyUnreachableGatewayIsNotAPIError(t *testing.T) {
	srv := newGateway(t, "paid", 1000)
	srv.Close() // shut down before use

	client := NewClient(srv.URL, "key", "secret")
	_, err := client.Verify(context.Background(), "imp_123")
	if err == nil {
		t.Fatal("expected error for unreachable gateway")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failure must not be classified as a gateway rejection")
	}
}
