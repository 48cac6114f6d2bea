// Package cart keeps a session's shopping cart server-side in Redis and
// turns it into an order at checkout.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single product entry in a cart. Lines are keyed by product ID;
// adding the same product again bumps the quantity instead of duplicating
// the line.
type Line struct {
	ProductID     int    `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

// Cart holds the ordered list of lines for one session.
type Cart struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Empty returns a fresh cart.
func Empty() *Cart {
	return &Cart{Lines: []Line{}}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) find(productID int) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Add bumps the quantity for the product, creating the line at quantity one
// if it is not in the cart yet.
func (c *Cart) Add(productID int) {
	if line := c.find(productID); line != nil {
		line.Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: 1})
}

// SetQuantity overwrites the quantity for the product. A quantity of zero or
// less removes the line entirely; a later Add starts again at one.
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.remove(productID)
		return
	}
	if line := c.find(productID); line != nil {
		line.Quantity = quantity
		return
	}
	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: quantity})
}

// SetCustomization stores a free-text preparation note on the product's
// line. It is a no-op when the product is not in the cart.
func (c *Cart) SetCustomization(productID int, text string) {
	if line := c.find(productID); line != nil {
		line.Customization = text
	}
}

func (c *Cart) remove(productID int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Total prices the cart against the given catalogue. Lines whose product is
// no longer listed contribute nothing.
func (c *Cart) Total(prices map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		price, ok := prices[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
