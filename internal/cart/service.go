package cart

import (
	"context"
	"strings"

	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/images"
	"github.com/chickorder/web/pkg/logger"
	"github.com/chickorder/web/pkg/money"
	"github.com/shopspring/decimal"
)

type catalog interface {
	ListProducts(ctx context.Context, filter upstream.ProductFilter) ([]upstream.Product, error)
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, token string, req upstream.CreateOrderRequest) (*upstream.Order, error)
}

// Service wires cart persistence to the product catalogue and checkout.
type Service struct {
	repo     *Repo
	products catalog
	orders   orderPlacer
	log      *logger.Logger
}

// NewService builds the cart service.
func NewService(repo *Repo, products catalog, orders orderPlacer, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, orders: orders, log: log}
}

// ItemView is one cart line priced and labelled for display.
type ItemView struct {
	ProductID     int    `json:"product_id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url"`
	UnitPrice     string `json:"unit_price"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
	Subtotal      string `json:"subtotal"`
	Unavailable   bool   `json:"unavailable,omitempty"`
}

// View is the cart as the storefront renders it.
type View struct {
	Items         []ItemView `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalAmount   string     `json:"total_amount"`
	IsEmpty       bool       `json:"is_empty"`
}

// CheckoutRequest carries the customer details collected at checkout.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// View loads the session's cart and prices it against the live catalogue.
func (s *Service) View(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// Add puts one unit of the product into the cart. Unknown or unavailable
// products are rejected before the cart changes.
func (s *Service) Add(ctx context.Context, sessionID string, productID int) (*View, error) {
	products, err := s.products.ListProducts(ctx, upstream.ProductFilter{})
	if err != nil {
		return nil, err
	}

	var found *upstream.Product
	for i := range products {
		if products[i].ID == productID {
			found = &products[i]
			break
		}
	}
	if found == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	if !found.IsAvailable {
		return nil, errors.New(errors.CodeValidation, "product is not available")
	}

	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(productID)
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return s.renderWithCatalog(c, products)
}

// SetQuantity overwrites a line's quantity; zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (*View, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// SetCustomization stores a preparation note on a cart line.
func (s *Service) SetCustomization(ctx context.Context, sessionID string, productID int, text string) (*View, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.find(productID) == nil {
		return nil, errors.New(errors.CodeNotFound, "product is not in the cart")
	}
	c.SetCustomization(productID, text)
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// Checkout validates the cart and customer details, places the order with
// the order service, and clears the cart on success. Validation failures
// never reach the order service.
func (s *Service) Checkout(ctx context.Context, sessionID, token string, req CheckoutRequest) (*upstream.Order, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, errors.New(errors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, errors.New(errors.CodeValidation, "customer phone is required")
	}

	var method enums.PaymentMethod
	if req.PaymentMethod != "" {
		method, err = enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, errors.Wrap(errors.CodeValidation, err, "unknown payment method")
		}
	}

	products, err := s.products.ListProducts(ctx, upstream.ProductFilter{})
	if err != nil {
		return nil, err
	}
	listed := make(map[int]bool, len(products))
	for _, p := range products {
		listed[p.ID] = true
	}

	items := make([]upstream.CreateOrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		if !listed[line.ProductID] {
			continue
		}
		items = append(items, upstream.CreateOrderItem{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			Customization: line.Customization,
		})
	}
	if len(items) == 0 {
		return nil, errors.New(errors.CodeValidation, "cart has no purchasable items")
	}

	order, err := s.orders.CreateOrder(ctx, token, upstream.CreateOrderRequest{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Items:         items,
		PaymentMethod: method,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Clear(ctx, sessionID); err != nil {
		s.log.Error(ctx, "failed to clear cart after checkout", err)
	}
	return order, nil
}

func (s *Service) render(ctx context.Context, c *Cart) (*View, error) {
	if c.IsEmpty() {
		return &View{Items: []ItemView{}, TotalAmount: money.GHS(decimal.Zero), IsEmpty: true}, nil
	}
	products, err := s.products.ListProducts(ctx, upstream.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return s.renderWithCatalog(c, products)
}

func (s *Service) renderWithCatalog(c *Cart, products []upstream.Product) (*View, error) {
	byID := make(map[int]upstream.Product, len(products))
	prices := make(map[int]decimal.Decimal, len(products))
	for _, p := range products {
		byID[p.ID] = p
		prices[p.ID] = decimal.NewFromFloat(p.Price)
	}

	view := &View{Items: make([]ItemView, 0, len(c.Lines))}
	for _, line := range c.Lines {
		item := ItemView{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			Customization: line.Customization,
		}
		if p, ok := byID[line.ProductID]; ok {
			price := prices[line.ProductID]
			item.Name = p.Name
			item.ImageURL = images.ForProduct(p.Name)
			item.UnitPrice = money.GHS(price)
			item.Subtotal = money.GHS(money.Subtotal(price, line.Quantity))
		} else {
			item.Unavailable = true
			item.Subtotal = money.GHS(decimal.Zero)
		}
		view.Items = append(view.Items, item)
	}
	view.TotalQuantity = c.TotalQuantity()
	view.TotalAmount = money.GHS(c.Total(prices))
	view.IsEmpty = c.IsEmpty()
	return view, nil
}
