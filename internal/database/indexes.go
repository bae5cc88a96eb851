package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	_, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	codeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "productCode", Value: 1}},
		Options: options.Index().
			SetName("productCode_unique").
			SetUnique(true),
	}

	_, err := db.Collection("products").Indexes().CreateOne(ctx, codeIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: productCode index error:", err)
		return err
	}
	return nil
}

// EnsureCartIndexes installs the partial unique index that allows at most one
// active cart per user. Ordered and abandoned carts are excluded from the
// constraint so history can accumulate.
func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	activeCartIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().
			SetName("user_active_cart_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": "active",
			}),
	}

	_, err := db.Collection("carts").Indexes().CreateOne(ctx, activeCartIndex)
	if err != nil {
		log.Println("EnsureCartIndexes: active cart index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().
				SetName("orderNumber_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "payment.paymentId", Value: 1}},
			Options: options.Index().SetName("payment_paymentId"),
		},
	}

	_, err := db.Collection("orders").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}
