package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopmall/internal/database"
	"shopmall/internal/models"
	"shopmall/internal/payment"
)

type orderShippingRequest struct {
	RecipientName   string `json:"recipientName"`
	RecipientPhone  string `json:"recipientPhone"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	DetailAddress   string `json:"detailAddress"`
	DeliveryRequest string `json:"deliveryRequest"`
	ShippingMemo    string `json:"shippingMemo"`
}

type orderPaymentRequest struct {
	Method    string `json:"method"`
	PaymentID string `json:"paymentId"`
}

type createOrderRequest struct {
	Shipping   orderShippingRequest `json:"shipping"`
	Payment    orderPaymentRequest  `json:"payment"`
	PointsUsed int64                `json:"pointsUsed"`
	Memo       string               `json:"memo"`
}

type missingProductError struct {
	ProductID primitive.ObjectID
}

func (e missingProductError) Error() string { return "cart references a missing product" }

// CreateOrder converts the user's active cart into a persisted order. Every
// gate runs before the transaction; the transaction covers order-number
// allocation, order insert and the cart status flip so a failure leaves no
// partial state.
func CreateOrder(db *mongo.Database, gateway payment.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if msg := validateOrderRequest(req); msg != "" {
			respondError(c, http.StatusBadRequest, route, msg)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		paymentID := strings.TrimSpace(req.Payment.PaymentID)
		requiresVerification := paymentID != "" && req.Payment.Method != models.MethodBankTransfer

		var verifiedAmount int64
		haveVerifiedAmount := false

		if requiresVerification {
			// idempotency by external reference: a resubmitted payment id
			// returns the already-created order instead of a duplicate
			var existing models.Order
			err := db.Collection("orders").FindOne(ctx, bson.M{
				"payment.paymentId": paymentID,
				"user":              userID,
			}).Decode(&existing)
			if err == nil {
				log.Printf("[ORDER] [WARN] duplicate submission user=%s paymentId=%s order=%s",
					userID.Hex(), paymentID, existing.OrderNumber)
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"message": "payment already processed",
					"data": gin.H{
						"orderId":     existing.ID.Hex(),
						"orderNumber": existing.OrderNumber,
					},
				})
				return
			}
			if err != mongo.ErrNoDocuments {
				respondInternal(c, route, "db error", err)
				return
			}

			verified, err := gateway.Verify(ctx, paymentID)
			if err != nil {
				var apiErr *payment.APIError
				if errors.As(err, &apiErr) {
					respondError(c, http.StatusBadRequest, route, "payment verification failed: "+apiErr.Message)
					return
				}
				respondInternal(c, route, "payment verification unavailable, try again later", err)
				return
			}
			if verified.Status != payment.StatusPaid {
				respondError(c, http.StatusBadRequest, route,
					fmt.Sprintf("payment is not completed (status: %s)", verified.Status))
				return
			}
			verifiedAmount = verified.Amount
			haveVerifiedAmount = true
		}

		cart, err := findActiveCart(ctx, db, userID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusBadRequest, route, "cart is empty")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}
		if len(cart.Items) == 0 {
			respondError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		orderItems, err := snapshotCartItems(ctx, db, cart.Items)
		if err != nil {
			var missing missingProductError
			if errors.As(err, &missing) {
				respondError(c, http.StatusBadRequest, route,
					"cart contains a product that no longer exists, check your cart")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		amount := buildOrderAmount(cartTotalAmount(cart.Items), req.PointsUsed)
		if amount.Total < 0 {
			respondError(c, http.StatusBadRequest, route, "points used exceed the order total")
			return
		}

		// reconciliation: the gateway's paid amount must match what this cart
		// costs right now, or the cart changed after authorization
		if haveVerifiedAmount && verifiedAmount != amount.Total {
			log.Printf("[ORDER] [ERROR] amount mismatch paid=%d calculated=%d user=%s",
				verifiedAmount, amount.Total, userID.Hex())
			respondError(c, http.StatusBadRequest, route,
				fmt.Sprintf("paid amount does not match order total (paid: %d, order: %d)", verifiedAmount, amount.Total))
			return
		}

		now := time.Now()
		order := buildOrder(userID, orderItems, req, amount, now)
		if haveVerifiedAmount {
			order.Payment.VerifiedAmount = verifiedAmount
		}
		order.Points.Earned = pointsEarnedFor(amount.Total)
		order.Points.Used = req.PointsUsed

		session, err := db.Client().StartSession()
		if err != nil {
			respondInternal(c, route, "db error", err)
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			seq, err := database.NextOrderSequence(sessCtx, db, orderDateKey(now))
			if err != nil {
				return nil, err
			}
			order.OrderNumber = formatOrderNumber(now, seq)

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}

			_, err = db.Collection("carts").UpdateByID(sessCtx, cart.ID, bson.M{
				"$set": bson.M{
					"status":    models.CartStatusOrdered,
					"updatedAt": now,
				},
			})
			return nil, err
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusConflict, route, "order number collision, try again")
				return
			}
			respondInternal(c, route, "order creation failed", err)
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.OrderNumber)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "order created",
			"data":    order,
		})
	}
}

func validateOrderRequest(req createOrderRequest) string {
	s := req.Shipping
	if strings.TrimSpace(s.RecipientName) == "" ||
		strings.TrimSpace(s.RecipientPhone) == "" ||
		strings.TrimSpace(s.PostalCode) == "" ||
		strings.TrimSpace(s.Address) == "" {
		return "recipient name, phone, postal code and address are required"
	}
	if strings.TrimSpace(req.Payment.Method) == "" {
		return "payment method is required"
	}
	if !models.IsValidPaymentMethod(req.Payment.Method) {
		return "invalid payment method"
	}
	if req.PointsUsed < 0 {
		return "points used must be 0 or greater"
	}
	return ""
}

// snapshotCartItems resolves every cart line against the catalog and freezes
// code, name, image and the cart's captured price into order lines.
func snapshotCartItems(ctx context.Context, db *mongo.Database, items []models.CartItem) ([]models.OrderItem, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			return nil, missingProductError{ProductID: item.ProductID}
		}
		if err != nil {
			return nil, err
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductCode:  product.ProductCode,
			ProductName:  product.Name,
			ProductImage: product.Image,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Subtotal:     item.Price * int64(item.Quantity),
		})
	}
	return orderItems, nil
}

func buildOrder(userID primitive.ObjectID, items []models.OrderItem, req createOrderRequest, amount models.OrderAmount, now time.Time) models.Order {
	paymentStatus := models.PaymentPaid
	orderStatus := models.OrderPaid
	var paidAt *time.Time
	if req.Payment.Method == models.MethodBankTransfer {
		paymentStatus = models.PaymentPending
		orderStatus = models.OrderAwaitingPayment
	} else {
		t := now
		paidAt = &t
	}

	return models.Order{
		UserID: userID,
		Items:  items,
		Shipping: models.OrderShippingInfo{
			RecipientName:   strings.TrimSpace(req.Shipping.RecipientName),
			RecipientPhone:  strings.TrimSpace(req.Shipping.RecipientPhone),
			PostalCode:      strings.TrimSpace(req.Shipping.PostalCode),
			Address:         strings.TrimSpace(req.Shipping.Address),
			DetailAddress:   strings.TrimSpace(req.Shipping.DetailAddress),
			DeliveryRequest: strings.TrimSpace(req.Shipping.DeliveryRequest),
			ShippingMemo:    strings.TrimSpace(req.Shipping.ShippingMemo),
		},
		Amount: amount,
		Payment: models.OrderPayment{
			Method:    req.Payment.Method,
			Status:    paymentStatus,
			PaidAt:    paidAt,
			PaymentID: strings.TrimSpace(req.Payment.PaymentID),
		},
		Status:    orderStatus,
		Memo:      strings.TrimSpace(req.Memo),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/my"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "authentication token is required")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 10)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{"user": userID}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		listOrders(c, db, route, filter, page, limit)
	}
}

// GetAllOrders is the admin listing with status, payment-status and date-range
// filters.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 20)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if paymentStatus := strings.TrimSpace(c.Query("paymentStatus")); paymentStatus != "" {
			filter["payment.status"] = paymentStatus
		}

		created := bson.M{}
		if start := strings.TrimSpace(c.Query("startDate")); start != "" {
			t, err := parseDateParam(start)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid startDate")
				return
			}
			created["$gte"] = t
		}
		if end := strings.TrimSpace(c.Query("endDate")); end != "" {
			t, err := parseDateParam(end)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid endDate")
				return
			}
			created["$lte"] = t
		}
		if len(created) > 0 {
			filter["createdAt"] = created
		}

		listOrders(c, db, route, filter, page, limit)
	}
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func listOrders(c *gin.Context, db *mongo.Database, route string, filter bson.M, page, limit int64) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
	if err != nil {
		respondInternal(c, route, "db error", err)
		return
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		respondInternal(c, route, "db error", err)
		return
	}

	total, err := db.Collection("orders").CountDocuments(ctx, filter)
	if err != nil {
		respondInternal(c, route, "db error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(orders),
		"total":      total,
		"page":       page,
		"totalPages": totalPages(total, limit),
		"data":       orders,
	})
}

func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if !authorizeOrderAccess(c, route, order) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

func GetOrderByNumber(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/number/:orderNumber"
		defer handlePanic(c, route)

		orderNumber := strings.ToUpper(strings.TrimSpace(c.Param("orderNumber")))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if !authorizeOrderAccess(c, route, order) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// authorizeOrderAccess allows the order's owner or an admin, responding 403
// otherwise.
func authorizeOrderAccess(c *gin.Context, route string, order models.Order) bool {
	if isAdmin(c) {
		return true
	}
	userID, ok := currentUserID(c)
	if !ok || order.UserID != userID {
		respondError(c, http.StatusForbidden, route, "no permission for this order")
		return false
	}
	return true
}

type updateOrderRequest struct {
	Shipping *orderShippingUpdate `json:"shipping"`
	Payment  *orderPaymentUpdate  `json:"payment"`
	Memo     *string              `json:"memo"`
	Points   *orderPointsUpdate   `json:"points"`
}

type orderShippingUpdate struct {
	RecipientName   *string `json:"recipientName"`
	RecipientPhone  *string `json:"recipientPhone"`
	PostalCode      *string `json:"postalCode"`
	Address         *string `json:"address"`
	DetailAddress   *string `json:"detailAddress"`
	DeliveryRequest *string `json:"deliveryRequest"`
	ShippingMemo    *string `json:"shippingMemo"`
}

type orderPaymentUpdate struct {
	Method    *string    `json:"method"`
	Status    *string    `json:"status"`
	PaymentID *string    `json:"paymentId"`
	PaidAt    *time.Time `json:"paidAt"`
}

type orderPointsUpdate struct {
	Earned *int64 `json:"earned"`
	Used   *int64 `json:"used"`
}

// UpdateOrder is the admin partial edit of shipping, payment, memo and points.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{"updatedAt": time.Now()}

		if req.Shipping != nil {
			s := req.Shipping
			setIfPresent(update, "shipping.recipientName", s.RecipientName)
			setIfPresent(update, "shipping.recipientPhone", s.RecipientPhone)
			setIfPresent(update, "shipping.postalCode", s.PostalCode)
			setIfPresent(update, "shipping.address", s.Address)
			setIfPresent(update, "shipping.detailAddress", s.DetailAddress)
			setIfPresent(update, "shipping.deliveryRequest", s.DeliveryRequest)
			setIfPresent(update, "shipping.shippingMemo", s.ShippingMemo)
		}
		if req.Payment != nil {
			p := req.Payment
			if p.Method != nil {
				if !models.IsValidPaymentMethod(*p.Method) {
					respondError(c, http.StatusBadRequest, route, "invalid payment method")
					return
				}
				update["payment.method"] = *p.Method
			}
			if p.Status != nil {
				if !models.IsValidPaymentStatus(*p.Status) {
					respondError(c, http.StatusBadRequest, route, "invalid payment status")
					return
				}
				update["payment.status"] = *p.Status
			}
			if p.PaymentID != nil {
				update["payment.paymentId"] = strings.TrimSpace(*p.PaymentID)
			}
			if p.PaidAt != nil {
				update["payment.paidAt"] = *p.PaidAt
			}
		}
		if req.Memo != nil {
			update["memo"] = strings.TrimSpace(*req.Memo)
		}
		if req.Points != nil {
			if req.Points.Earned != nil {
				update["points.earned"] = *req.Points.Earned
			}
			if req.Points.Used != nil {
				update["points.used"] = *req.Points.Used
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var order models.Order
		if err := res.Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "order updated",
			"data":    order,
		})
	}
}

func setIfPresent(update bson.M, key string, value *string) {
	if value != nil {
		update[key] = strings.TrimSpace(*value)
	}
}

type updateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
}

// UpdateOrderStatus moves the order through its workflow. Entering "shipping"
// with a tracking number stamps the delivery info; "delivered" stamps the
// completion time.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/status"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.IsValidOrderStatus(req.Status) {
			respondError(c, http.StatusBadRequest, route, "invalid order status")
			return
		}

		now := time.Now()
		update := bson.M{
			"status":    req.Status,
			"updatedAt": now,
		}
		if req.Status == models.OrderShipping && strings.TrimSpace(req.TrackingNumber) != "" {
			update["delivery.trackingNumber"] = strings.TrimSpace(req.TrackingNumber)
			update["delivery.carrier"] = strings.TrimSpace(req.Carrier)
			update["delivery.shippedAt"] = now
		}
		if req.Status == models.OrderDelivered {
			update["delivery.deliveredAt"] = now
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var order models.Order
		if err := res.Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		log.Printf("[ORDER] [INFO] status changed order=%s status=%s", order.OrderNumber, req.Status)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "order status updated",
			"data":    order,
		})
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder lets the owner or an admin cancel while the order has not
// started shipping.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/cancel"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req cancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if !authorizeOrderAccess(c, route, order) {
			return
		}

		if !models.IsCancellable(order.Status) {
			respondError(c, http.StatusBadRequest, route, "order can no longer be cancelled")
			return
		}

		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			reason = "customer request"
		}

		now := time.Now()
		update := bson.M{
			"status":                   models.OrderCancelled,
			"cancellation.reason":      reason,
			"cancellation.requestedAt": now,
			"updatedAt":                now,
		}
		if order.Payment.Status == models.PaymentPaid {
			update["payment.status"] = models.PaymentCancelled
		}

		res := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		if err := res.Decode(&order); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		log.Println("[ORDER] [INFO] order cancelled:", order.OrderNumber)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "order cancelled",
			"data":    order,
		})
	}
}

// DeleteOrder hard-deletes an order that is not in transit or delivered.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondInternal(c, route, "db error", err)
			return
		}

		if !models.IsDeletable(order.Status) {
			respondError(c, http.StatusBadRequest, route,
				"orders in transit or delivered cannot be deleted, cancel instead")
			return
		}

		if _, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondInternal(c, route, "db error", err)
			return
		}

		log.Println("[ORDER] [INFO] order deleted:", order.OrderNumber)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "order deleted",
		})
	}
}
