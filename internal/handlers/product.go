package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopmall/internal/models"
)

type createProductRequest struct {
	ProductCode string `json:"productCode" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Price       *int64 `json:"price" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Image       string `json:"image" binding:"required"`
	Description string `json:"description"`
}

type updateProductRequest struct {
	ProductCode *string `json:"productCode"`
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		code := strings.ToUpper(strings.TrimSpace(req.ProductCode))
		if *req.Price < 0 {
			respondError(c, http.StatusBadRequest, route, "price must be 0 or greater")
			return
		}
		category := strings.TrimSpace(req.Category)
		if !models.IsValidCategory(category) {
			respondError(c, http.StatusBadRequest, route, "category must be one of party, family, strategy, accessory")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// pre-check for a friendly message; the unique index still backs it
		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"productCode": code})
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusConflict, route, "product code already exists")
			return
		}

		now := time.Now()
		product := models.Product{
			ProductCode: code,
			Name:        strings.TrimSpace(req.Name),
			Price:       *req.Price,
			Category:    category,
			Image:       strings.TrimSpace(req.Image),
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusConflict, route, "product code already exists")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		log.Println("[PRODUCT] [INFO] product created:", code)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "product created",
			"data":    product,
		})
	}
}

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 10)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"count":      len(products),
			"total":      total,
			"page":       page,
			"totalPages": totalPages(total, limit),
			"data":       products,
		})
	}
}

func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    product,
		})
	}
}

func GetProductByCode(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/code/:code"
		defer handlePanic(c, route)

		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"productCode": code}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    product,
		})
	}
}

// GenerateProductCode suggests the next code after the highest existing one.
func GenerateProductCode(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/generate-code"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{},
			options.Find().SetProjection(bson.M{"productCode": 1}))
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		codes := make([]string, 0, len(products))
		for _, product := range products {
			codes = append(codes, product.ProductCode)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"productCode": nextProductCode(highestProductCode(codes)),
			},
		})
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{"updatedAt": time.Now()}

		if req.ProductCode != nil {
			code := strings.ToUpper(strings.TrimSpace(*req.ProductCode))
			count, err := db.Collection("products").CountDocuments(ctx, bson.M{
				"productCode": code,
				"_id":         bson.M{"$ne": id},
			})
			if err != nil {
				respondInternal(c, route, "db error", err)
				return
			}
			if count > 0 {
				respondError(c, http.StatusConflict, route, "product code already exists")
				return
			}
			update["productCode"] = code
		}
		if req.Name != nil {
			update["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			if *req.Price < 0 {
				respondError(c, http.StatusBadRequest, route, "price must be 0 or greater")
				return
			}
			update["price"] = *req.Price
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if !models.IsValidCategory(category) {
				respondError(c, http.StatusBadRequest, route, "category must be one of party, family, strategy, accessory")
				return
			}
			update["category"] = category
		}
		if req.Image != nil {
			update["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}

		res := db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var product models.Product
		if err := res.Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "product not found")
				return
			}
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusConflict, route, "product code already exists")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "product updated",
			"data":    product,
		})
	}
}

// DeleteProduct removes the catalog entry. Orders keep their snapshots, so
// history is unaffected; active carts referencing it fail at order time.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "product not found")
			return
		}

		log.Println("[PRODUCT] [INFO] product deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "product deleted",
		})
	}
}

var productCodeSuffix = regexp.MustCompile(`(\d+)$`)

// highestProductCode returns the code with the largest numeric suffix. A
// lexicographic comparison misorders once suffixes grow past three digits
// (BG999 sorts above BG1000), so suffixes are compared as numbers. Codes
// without a numeric suffix are ignored.
func highestProductCode(codes []string) string {
	best := ""
	bestNumber := -1
	for _, code := range codes {
		match := productCodeSuffix.FindStringSubmatch(code)
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if number > bestNumber {
			bestNumber = number
			best = code
		}
	}
	return best
}

// nextProductCode increments the numeric suffix of the highest existing code,
// keeping at least three digits: BG007 -> BG008. An empty catalog starts at
// BG001.
func nextProductCode(lastCode string) string {
	if lastCode == "" {
		return "BG001"
	}

	match := productCodeSuffix.FindStringSubmatch(lastCode)
	if match == nil {
		return "BG001"
	}

	number, err := strconv.Atoi(match[1])
	if err != nil {
		return "BG001"
	}

	prefix := strings.TrimSuffix(lastCode, match[1])
	return fmt.Sprintf("%s%03d", prefix, number+1)
}
