package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/chickorder/web/pkg/enums"
)

// CreateOrder submits a checkout snapshot and returns the created order.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches an order with its nested items.
func (c *Client) GetOrder(ctx context.Context, token string, orderID int) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus advances an order's status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status enums.OrderStatus) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d/status", orderID)
	body := map[string]string{"status": status.String()}
	if err := c.do(ctx, http.MethodPut, path, nil, token, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InitiatePayment asks the order service to start payment collection for an
// order using the given method.
func (c *Client) InitiatePayment(ctx context.Context, token string, orderID int, method enums.PaymentMethod) (*PaymentInitiation, error) {
	query := url.Values{}
	query.Set("payment_method", method.String())

	var initiation PaymentInitiation
	path := fmt.Sprintf("/orders/%d/payment", orderID)
	if err := c.do(ctx, http.MethodPost, path, query, token, nil, &initiation); err != nil {
		return nil, err
	}
	return &initiation, nil
}
