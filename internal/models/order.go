package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods. MethodBankTransfer is the only method that skips gateway
// verification; payment is confirmed manually once the deposit arrives.
const (
	MethodCard           = "card"
	MethodBankTransfer   = "bank_transfer"
	MethodVirtualAccount = "virtual_account"
	MethodMobile         = "mobile"
	MethodEasyPay        = "easy_pay"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
	PaymentRefunded  = "refunded"
)

const (
	OrderReceived        = "received"
	OrderAwaitingPayment = "awaiting_payment"
	OrderPaid            = "paid"
	OrderPreparing       = "preparing"
	OrderShipping        = "shipping"
	OrderDelivered       = "delivered"
	OrderCancelled       = "cancelled"
	OrderRefundPending   = "refund_pending"
	OrderRefunded        = "refunded"
)

// OrderItem is an immutable snapshot of a product at purchase time. Later
// catalog edits or deletions must not alter it.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"product" json:"productId"`
	ProductCode  string             `bson:"productCode" json:"productCode"`
	ProductName  string             `bson:"productName" json:"productName"`
	ProductImage string             `bson:"productImage" json:"productImage"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        int64              `bson:"price" json:"price"`
	Subtotal     int64              `bson:"subtotal" json:"subtotal"`
}

type OrderShippingInfo struct {
	RecipientName   string `bson:"recipientName" json:"recipientName"`
	RecipientPhone  string `bson:"recipientPhone" json:"recipientPhone"`
	PostalCode      string `bson:"postalCode" json:"postalCode"`
	Address         string `bson:"address" json:"address"`
	DetailAddress   string `bson:"detailAddress,omitempty" json:"detailAddress,omitempty"`
	DeliveryRequest string `bson:"deliveryRequest,omitempty" json:"deliveryRequest,omitempty"`
	ShippingMemo    string `bson:"shippingMemo,omitempty" json:"shippingMemo,omitempty"`
}

// OrderAmount carries the money breakdown. Total is always
// ItemsTotal + ShippingFee - Discount.
type OrderAmount struct {
	ItemsTotal  int64 `bson:"itemsTotal" json:"itemsTotal"`
	ShippingFee int64 `bson:"shippingFee" json:"shippingFee"`
	Discount    int64 `bson:"discount" json:"discount"`
	Total       int64 `bson:"total" json:"total"`
}

type OrderPayment struct {
	Method         string     `bson:"method" json:"method"`
	Status         string     `bson:"status" json:"status"`
	PaidAt         *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentID      string     `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	VerifiedAmount int64      `bson:"verifiedAmount,omitempty" json:"verifiedAmount,omitempty"`
}

type OrderDelivery struct {
	TrackingNumber string     `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Carrier        string     `bson:"carrier,omitempty" json:"carrier,omitempty"`
	ShippedAt      *time.Time `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
}

type OrderPoints struct {
	Earned int64 `bson:"earned" json:"earned"`
	Used   int64 `bson:"used" json:"used"`
}

type OrderCancellation struct {
	Reason       string     `bson:"reason,omitempty" json:"reason,omitempty"`
	RequestedAt  *time.Time `bson:"requestedAt,omitempty" json:"requestedAt,omitempty"`
	ProcessedAt  *time.Time `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	RefundAmount *int64     `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
}

// Order is the persisted order document, created from an active cart.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber  string             `bson:"orderNumber" json:"orderNumber"`
	UserID       primitive.ObjectID `bson:"user" json:"userId"`
	Items        []OrderItem        `bson:"items" json:"items"`
	Shipping     OrderShippingInfo  `bson:"shipping" json:"shipping"`
	Amount       OrderAmount        `bson:"amount" json:"amount"`
	Payment      OrderPayment       `bson:"payment" json:"payment"`
	Status       string             `bson:"status" json:"status"`
	Delivery     OrderDelivery      `bson:"delivery" json:"delivery"`
	Points       OrderPoints        `bson:"points" json:"points"`
	Memo         string             `bson:"memo,omitempty" json:"memo,omitempty"`
	Cancellation OrderCancellation  `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidPaymentMethod(method string) bool {
	switch method {
	case MethodCard, MethodBankTransfer, MethodVirtualAccount, MethodMobile, MethodEasyPay:
		return true
	}
	return false
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderReceived, OrderAwaitingPayment, OrderPaid, OrderPreparing,
		OrderShipping, OrderDelivered, OrderCancelled, OrderRefundPending, OrderRefunded:
		return true
	}
	return false
}

// IsCancellable reports whether an order in the given status may still be
// cancelled by the customer. Once shipping starts, cancellation turns into a
// refund flow handled by an admin.
func IsCancellable(status string) bool {
	switch status {
	case OrderReceived, OrderAwaitingPayment, OrderPaid, OrderPreparing:
		return true
	}
	return false
}

// IsDeletable reports whether an admin may hard-delete the order. Orders in
// transit or already delivered must go through cancellation instead.
func IsDeletable(status string) bool {
	return status != OrderShipping && status != OrderDelivered
}
