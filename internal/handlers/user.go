package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"shopmall/internal/models"
)

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
}

// CreateUser registers a new account. This route stays unauthenticated; the
// rest of the users surface is admin-only.
func CreateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users"
		defer handlePanic(c, route)

		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		role := strings.TrimSpace(req.Role)
		if role == "" {
			role = models.RoleUser
		}
		if !models.IsValidRole(role) {
			respondError(c, http.StatusBadRequest, route, "role must be user or admin")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusConflict, route, "email already registered")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondInternal(c, route, "password hash failed", err)
			return
		}

		now := time.Now()
		user := models.User{
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Password:  string(hash),
			Phone:     strings.TrimSpace(req.Phone),
			Address:   strings.TrimSpace(req.Address),
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusConflict, route, "email already registered")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			user.ID = id
		}

		log.Println("[USER] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "user created",
			"data":    user,
		})
	}
}

func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("users").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(users),
			"data":    users,
		})
	}
}

func GetUserByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "user not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    user,
		})
	}
}

func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{"updatedAt": time.Now()}

		if req.Name != nil {
			update["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			count, err := db.Collection("users").CountDocuments(ctx, bson.M{
				"email": email,
				"_id":   bson.M{"$ne": id},
			})
			if err != nil {
				respondInternal(c, route, "db error", err)
				return
			}
			if count > 0 {
				respondError(c, http.StatusConflict, route, "email already registered")
				return
			}
			update["email"] = email
		}
		if req.Password != nil {
			if len(*req.Password) < 6 {
				respondError(c, http.StatusBadRequest, route, "password must be at least 6 characters")
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				respondInternal(c, route, "password hash failed", err)
				return
			}
			update["password"] = string(hash)
		}
		if req.Phone != nil {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			update["address"] = strings.TrimSpace(*req.Address)
		}
		if req.Role != nil {
			if !models.IsValidRole(*req.Role) {
				respondError(c, http.StatusBadRequest, route, "role must be user or admin")
				return
			}
			update["role"] = *req.Role
		}

		res := db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var user models.User
		if err := res.Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "user not found")
				return
			}
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusConflict, route, "email already registered")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "user updated",
			"data":    user,
		})
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "user not found")
			return
		}

		log.Println("[USER] [INFO] user deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "user deleted",
		})
	}
}
