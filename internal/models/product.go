package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryParty     = "party"
	CategoryFamily    = "family"
	CategoryStrategy  = "strategy"
	CategoryAccessory = "accessory"
)

// Product is a catalog entry. ProductCode is stored uppercased and is unique.
// Price is in whole currency units.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductCode string             `bson:"productCode" json:"productCode"`
	Name        string             `bson:"name" json:"name"`
	Price       int64              `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryParty, CategoryFamily, CategoryStrategy, CategoryAccessory:
		return true
	}
	return false
}
