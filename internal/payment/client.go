package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Payment is the gateway's authoritative view of a payment attempt.
type Payment struct {
	PaymentID   string `json:"imp_uid"`
	MerchantUID string `json:"merchant_uid"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
}

// StatusPaid is the only gateway status that allows order creation.
const StatusPaid = "paid"

// Verifier fetches the authoritative payment record for an external payment
// reference. Order creation consumes this interface so tests can stub it.
type Verifier interface {
	Verify(ctx context.Context, paymentID string) (*Payment, error)
}

// APIError is a rejection from the gateway itself, as opposed to a transport
// failure. Callers map it to a client error rather than a server error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment gateway rejected request: %s (%d)", e.Message, e.StatusCode)
}

// Client talks to an Iamport-style REST gateway: exchange API credentials for
// an access token, then look payments up by their gateway-issued id.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      *http.Client
}

func NewClient(baseURL, apiKey, apiSecret string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func (c *Client) Verify(ctx context.Context, paymentID string) (*Payment, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("parse payment response: %w", err)
	}
	if payment.PaymentID == "" {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "payment not found"}
	}
	return &payment, nil
}

func (c *Client) getToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"imp_key":    c.apiKey,
		"imp_secret": c.apiSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/getToken", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", &APIError{StatusCode: http.StatusUnauthorized, Message: "token exchange returned no access token"}
	}
	return token.AccessToken, nil
}

// do runs the request and unwraps the gateway envelope. Non-2xx responses and
// non-zero envelope codes become APIErrors.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, &APIError{StatusCode: res.StatusCode, Message: msg}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse gateway response: %w", err)
	}
	if env.Code != 0 {
		return nil, &APIError{StatusCode: res.StatusCode, Message: env.Message}
	}
	return env.Response, nil
}
