package upstream

import (
	"context"
	"net/http"
)

// Dashboard fetches the admin aggregate counters.
func (c *Client) Dashboard(ctx context.Context, token string) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PendingOrders lists the orders awaiting fulfilment.
func (c *Client) PendingOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders/pending", nil, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// TodaySalesSummary fetches the day's sales numbers.
func (c *Client) TodaySalesSummary(ctx context.Context, token string) (*TodaySales, error) {
	var sales TodaySales
	if err := c.do(ctx, http.MethodGet, "/admin/sales/today", nil, token, nil, &sales); err != nil {
		return nil, err
	}
	return &sales, nil
}
