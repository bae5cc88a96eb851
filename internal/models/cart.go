package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CartStatusActive    = "active"
	CartStatusOrdered   = "ordered"
	CartStatusAbandoned = "abandoned"
)

// CartItem is one line of a cart. Price is the product price captured when the
// line was added or last updated; the order snapshot resolves price drift.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     int64              `bson:"price" json:"price"`
}

// Cart is the per-user basket. A partial unique index keeps at most one
// "active" cart per user; TotalAmount is recomputed on every mutation.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"userId"`
	Items       []CartItem         `bson:"items" json:"items"`
	TotalAmount int64              `bson:"totalAmount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
