package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopmall/internal/models"
)

// cartRequestContext builds an authenticated test context. The db handle is
// nil on purpose: the quantity gate must reject before any database access.
func cartRequestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", primitive.NewObjectID())
	return c, recorder
}

func TestAddCartItemRejectsNonPositiveQuantity(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	for _, quantity := range []int{0, -1, -5} {
		body := fmt.Sprintf(`{"productId":%q,"quantity":%d}`, productID, quantity)
		c, recorder := cartRequestContext(t, "POST", "/api/cart/items", body)

		AddCartItem(nil)(c)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("quantity=%d: expected status 400, got %d", quantity, recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "quantity must be at least 1") {
			t.Fatalf("quantity=%d: expected quantity message, got %s", quantity, recorder.Body.String())
		}
	}
}

func TestUpdateCartItemRejectsNonPositiveQuantity(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	for _, quantity := range []int{0, -1} {
		body := fmt.Sprintf(`{"quantity":%d}`, quantity)
		c, recorder := cartRequestContext(t, "PUT", "/api/cart/items/"+productID, body)
		c.Params = gin.Params{{Key: "productId", Value: productID}}

		UpdateCartItem(nil)(c)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("quantity=%d: expected status 400, got %d", quantity, recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "quantity must be at least 1") {
			t.Fatalf("quantity=%d: expected quantity message, got %s", quantity, recorder.Body.String())
		}
	}
}

func TestRefreshedPriceDistinguishesMissingFromFailure(t *testing.T) {
	price, resolved, err := refreshedPrice(models.Product{Price: 25000}, nil)
	if err != nil || !resolved || price != 25000 {
		t.Fatalf("expected resolved price 25000, got price=%d resolved=%v err=%v", price, resolved, err)
	}

	_, resolved, err = refreshedPrice(models.Product{}, mongo.ErrNoDocuments)
	if err != nil || resolved {
		t.Fatalf("expected deleted product to keep the captured price, got resolved=%v err=%v", resolved, err)
	}

	transportErr := errors.New("connection reset")
	_, _, err = refreshedPrice(models.Product{}, transportErr)
	if err != transportErr {
		t.Fatalf("expected transport error to surface, got %v", err)
	}
}

func TestUpdateCartItemRequiresQuantityField(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	c, recorder := cartRequestContext(t, "PUT", "/api/cart/items/"+productID, `{}`)
	c.Params = gin.Params{{Key: "productId", Value: productID}}

	UpdateCartItem(nil)(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing quantity, got %d", recorder.Code)
	}
}
