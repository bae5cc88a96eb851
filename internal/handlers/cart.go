package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopmall/internal/models"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the user's active cart, creating an empty one when absent.
// The stored total is reconciled against the items on every read.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil && err != mongo.ErrNoDocuments {
			respondInternal(c, route, "db error", err)
			return
		}

		if err == mongo.ErrNoDocuments {
			fresh, err := createActiveCart(ctx, db, userID)
			if err != nil {
				if mongo.IsDuplicateKeyError(err) {
					respondError(c, http.StatusConflict, route, "cart was created concurrently, retry")
					return
				}
				respondInternal(c, route, "db error", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": fresh})
			return
		}

		if total := cartTotalAmount(cart.Items); total != cart.TotalAmount {
			cart.TotalAmount = total
			if err := saveCart(ctx, db, cart); err != nil {
				respondInternal(c, route, "db error", err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
	}
}

// AddCartItem adds a product to the active cart. An existing line gets its
// quantity incremented and its price refreshed to the current product price.
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart/items"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if quantity < 1 {
			respondError(c, http.StatusBadRequest, route, "quantity must be at least 1")
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil && err != mongo.ErrNoDocuments {
			respondInternal(c, route, "db error", err)
			return
		}
		if err == mongo.ErrNoDocuments {
			cart = &models.Cart{
				UserID:    userID,
				Items:     []models.CartItem{},
				Status:    models.CartStatusActive,
				CreatedAt: time.Now(),
			}
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				cart.Items[i].Price = product.Price
				found = true
				break
			}
		}
		if !found {
			cart.Items = append(cart.Items, models.CartItem{
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.Price,
			})
		}

		cart.TotalAmount = cartTotalAmount(cart.Items)

		if cart.ID.IsZero() {
			if err := insertCart(ctx, db, cart); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					respondError(c, http.StatusConflict, route, "cart was created concurrently, retry")
					return
				}
				respondInternal(c, route, "db error", err)
				return
			}
		} else if err := saveCart(ctx, db, cart); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		log.Printf("[CART] [INFO] item added user=%s product=%s qty=%d", userID.Hex(), productID.Hex(), quantity)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "item added to cart",
			"data":    cart,
		})
	}
}

func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/items/:productId"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if *req.Quantity < 1 {
			respondError(c, http.StatusBadRequest, route, "quantity must be at least 1")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		index := -1
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				index = i
				break
			}
		}
		if index == -1 {
			respondError(c, http.StatusNotFound, route, "product not in cart")
			return
		}

		cart.Items[index].Quantity = *req.Quantity

		// refresh the stored price while the product still resolves; a deleted
		// product keeps the captured price
		var product models.Product
		lookupErr := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		price, resolved, lookupErr := refreshedPrice(product, lookupErr)
		if lookupErr != nil {
			respondInternal(c, route, "db error", lookupErr)
			return
		}
		if resolved {
			cart.Items[index].Price = price
		}

		cart.TotalAmount = cartTotalAmount(cart.Items)
		if err := saveCart(ctx, db, cart); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "cart item updated",
			"data":    cart,
		})
	}
}

func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/items/:productId"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		index := -1
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				index = i
				break
			}
		}
		if index == -1 {
			respondError(c, http.StatusNotFound, route, "product not in cart")
			return
		}

		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
		cart.TotalAmount = cartTotalAmount(cart.Items)

		if err := saveCart(ctx, db, cart); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "item removed from cart",
			"data":    cart,
		})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		cart.Items = []models.CartItem{}
		cart.TotalAmount = 0

		if err := saveCart(ctx, db, cart); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "cart cleared",
			"data":    cart,
		})
	}
}

// refreshedPrice classifies a product lookup made to refresh a cart line.
// A resolved product yields its current price, a deleted product keeps the
// captured price, and any other error is a real database failure.
func refreshedPrice(product models.Product, err error) (int64, bool, error) {
	if err == nil {
		return product.Price, true, nil
	}
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	return 0, false, err
}

func findActiveCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{
		"user":   userID,
		"status": models.CartStatusActive,
	}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func createActiveCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (*models.Cart, error) {
	cart := &models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		Status:    models.CartStatusActive,
		CreatedAt: time.Now(),
	}
	if err := insertCart(ctx, db, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func insertCart(ctx context.Context, db *mongo.Database, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	res, err := db.Collection("carts").InsertOne(ctx, cart)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}

func saveCart(ctx context.Context, db *mongo.Database, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := db.Collection("carts").UpdateByID(ctx, cart.ID, bson.M{
		"$set": bson.M{
			"items":       cart.Items,
			"totalAmount": cart.TotalAmount,
			"updatedAt":   cart.UpdatedAt,
		},
	})
	return err
}
